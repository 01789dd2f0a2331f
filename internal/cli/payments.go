package cli

import (
	"os"

	"github.com/spf13/cobra"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/listctl"
	"hostelmeals/internal/utils"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Membership checkout and payment history",
}

var paymentsCheckoutCmd = &cobra.Command{
	Use:   "checkout <badge>",
	Short: "Buy a membership tier (silver, gold, platinum)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/checkout"); err != nil {
			return err
		}
		badge, ok := domain.ParseBadge(args[0])
		if !ok {
			printWarn("unknown badge: " + args[0])
			return nil
		}
		intent, err := app.API.Payments.CreateIntent(cmd.Context(), badge)
		if err != nil {
			if domain.IsValidation(err) {
				printWarn(err.Error())
				return nil
			}
			return err
		}
		payment, err := app.API.Payments.Confirm(cmd.Context(), intent.ID)
		if err != nil {
			printWarn("payment not completed, you were not charged: " + err.Error())
			return nil
		}
		printOK("paid " + utils.FormatTaka(payment.Amount) + " for " + string(payment.Badge) + " (txn " + payment.TxnID + ")")
		return nil
	},
}

var paymentsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your payment history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/payment-history"); err != nil {
			return err
		}
		ctrl := listctl.New(app.API.Payments.History)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		rows := [][]string{}
		for _, p := range ctrl.Items() {
			rows = append(rows, []string{p.ID, string(p.Badge), utils.FormatTaka(p.Amount), p.TxnID, p.PaidAt})
		}
		printTable([]string{"ID", "BADGE", "AMOUNT", "TXN", "PAID"}, rows)
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

var paymentsReceiptCmd = &cobra.Command{
	Use:   "receipt <payment-id>",
	Short: "Download a PDF receipt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/payment-history"); err != nil {
			return err
		}
		data, filename, err := app.Receipt.Generate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = filename
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		printOK("wrote " + out)
		return nil
	},
}

func init() {
	addTableFlags(paymentsHistoryCmd)
	paymentsReceiptCmd.Flags().String("out", "", "output file (defaults to receipt-<id>.pdf)")
	paymentsCmd.AddCommand(paymentsCheckoutCmd, paymentsHistoryCmd, paymentsReceiptCmd)
}
