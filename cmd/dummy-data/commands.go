package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"dummy-data/internal/app/shop"
	"dummy-data/internal/domain/model"

	"github.com/spf13/cobra"
)

var errRemoveNotConfirmed = errors.New("refusing to remove data without --yes")

// errOutcome marks a run whose outcome was shown but had error severity.
// cause, when set, explains why the run could not proceed.
type errOutcome struct {
	outcome model.Outcome
	cause   error
}

func (e *errOutcome) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.outcome.Operation, e.outcome.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.outcome.Operation, e.outcome.Message)
}

func (e *errOutcome) Unwrap() error {
	return e.cause
}

func newProductsCmd(flags *rootFlags) *cobra.Command {
	var products, tags string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Generate products and tags until the shop holds the given totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperation(cmd, flags, model.OpLoadProductsAndTags, map[model.CountField]string{
				model.FieldProduct: products,
				model.FieldTag:     tags,
			})
		},
	}
	cmd.Flags().StringVar(&products, "count", "0", "Number of products")
	cmd.Flags().StringVar(&tags, "tags", "0", "Number of tags")
	return cmd
}

func newOrdersCmd(flags *rootFlags) *cobra.Command {
	var orders string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Generate orders until the shop holds the given total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperation(cmd, flags, model.OpLoadOrders, map[model.CountField]string{
				model.FieldOrder: orders,
			})
		},
	}
	cmd.Flags().StringVar(&orders, "count", "0", "Number of orders")
	return cmd
}

func newImagesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "Insert product images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOperation(cmd, flags, model.OpLoadProductImages, nil)
		},
	}
}

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Erase products, catalog, tags and orders of the shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				fmt.Fprintln(cmd.ErrOrStderr(), "Beware: this will erase the content of the Products, Catalog, Tags and Orders collections. Pass --yes to continue.")
				return errRemoveNotConfirmed
			}
			return runOperation(cmd, flags, model.OpRemoveAllData, nil)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm removal of all data")
	return cmd
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently settled operations from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer a.close()
			if a.journal == nil {
				return errors.New("journal is disabled; set DUMMY_DATA_JOURNAL_DRIVER")
			}
			entries, err := a.journal.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SETTLED\tOPERATION\tSHOP\tSEVERITY\tMESSAGE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.SettledAt.Local().Format(time.DateTime), e.Operation, e.ShopID, e.Severity, e.Message)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")
	return cmd
}

// runOperation resolves the shop, fills a form from raw flag text and
// prints the outcome.
func runOperation(cmd *cobra.Command, flags *rootFlags, op model.Operation, counts map[model.CountField]string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, flags, false)
	if err != nil {
		return err
	}
	defer a.close()

	form := model.NewFormState()
	for _, field := range op.Fields() {
		// rejected text is kept in the form and reported by the dispatcher
		_ = form.SetCount(field, counts[field])
	}

	opaque, err := a.shopReference(ctx)
	if err != nil {
		return err
	}
	id, _, resolveErr := shop.NewResolver(nil).Resolve(ctx, opaque)
	if resolveErr != nil {
		resolveErr = fmt.Errorf("shop reference %q: %w", opaque, resolveErr)
		a.logger.LogError("shop reference not resolved", resolveErr)
	}
	form.CurrentShopID = id

	outcome := a.service.Dispatch(ctx, op, form)
	printOutcome(cmd.OutOrStdout(), outcome)
	if outcome.Severity == model.SeverityError {
		return &errOutcome{outcome: outcome, cause: resolveErr}
	}
	return nil
}

func printOutcome(w io.Writer, outcome model.Outcome) {
	fmt.Fprintf(w, "[%s] %s\n", outcome.Severity, outcome.Message)
}
