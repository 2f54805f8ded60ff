package screen

import "dummy-data/internal/domain/model"

// ShopReferenceMsg tells a mounted screen the host's shop reference changed.
type ShopReferenceMsg struct {
	Opaque string
}

type shopResolvedMsg struct {
	opaque string
	id     string
	err    error
}

type operationSettledMsg struct {
	op      model.Operation
	outcome model.Outcome
}

type toastExpiredMsg struct {
	generation int
}
