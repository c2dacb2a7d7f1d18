package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
	"github.com/1taes/JOY-Intranet/internal/search"
)

func searchCmd() *cobra.Command {
	var (
		kind    string
		start   string
		end     string
		writer  string
		item    string
		keyword string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the transaction and RP ledgers",
		Long: `Search both ledgers in one pass. The keyword filter matches transaction
content and customer fields; RP rows are matched by the other filters only.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			results, err := a.search.Search(cmd.Context(), search.Query{
				Kind:      kind,
				StartDate: start,
				EndDate:   end,
				WriterUID: writer,
				Item:      item,
				Keyword:   keyword,
			})
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println(cli.InfoStyle.Render("No matching reports."))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d matching report(s)", len(results))))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Kind"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Time"),
				cli.HeaderStyle.Render("Item"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Writer"))
			for _, res := range results {
				if res.Kind == search.KindRP {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						res.Kind, res.RP.Date, res.RP.Time, res.RP.Item, res.RP.Amount, res.RP.WriterUID)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					res.Kind, res.Tx.Date, res.Tx.Time, res.Tx.Item, res.Tx.Amount, res.Tx.WriterUID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "restrict to one ledger (transaction, rp)")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	cmd.Flags().StringVar(&writer, "writer", "", "writer's unique number")
	cmd.Flags().StringVar(&item, "item", "", "exact item name")
	cmd.Flags().StringVar(&keyword, "keyword", "", "keyword for transaction content and customer")
	return cmd
}
