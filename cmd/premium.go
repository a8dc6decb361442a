package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/premium"
)

var premiumCmd = &cobra.Command{
	Use:   "premium",
	Short: "Show or change the premium subscription",
	RunE:  premiumStatus,
}

var premiumStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether premium is active and the available plans",
	RunE:  premiumStatus,
}

var premiumSubscribeCmd = &cobra.Command{
	Use:   "subscribe <product-id>",
	Short: "Buy a premium plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPremium(cmd, func(ctx context.Context, svc *premium.Service) error {
			return reportPurchase(cmd, svc.Purchase(ctx, args[0]), svc.IsPremium())
		})
	},
}

var premiumRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore premium from earlier purchases",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPremium(cmd, func(ctx context.Context, svc *premium.Service) error {
			return reportPurchase(cmd, svc.Restore(ctx), svc.IsPremium())
		})
	},
}

func premiumStatus(cmd *cobra.Command, args []string) error {
	return withPremium(cmd, func(ctx context.Context, svc *premium.Service) error {
		out := cmd.OutOrStdout()
		if svc.IsPremium() {
			fmt.Fprintln(out, "Premium is active. Interstitials are off.")
		} else {
			fmt.Fprintln(out, "Premium is not active.")
		}
		fmt.Fprintln(out)
		for _, p := range svc.Products() {
			fmt.Fprintf(out, "  %-28s  %-20s  %s / %s\n", p.ID, p.Title, p.Price, p.Period)
		}
		return nil
	})
}

func withPremium(cmd *cobra.Command, fn func(ctx context.Context, svc *premium.Service) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	settings := s.SettingsRepo()
	return fn(ctx, premium.NewService(ctx, premium.NewLocalBilling(settings), settings, stderrLogger()))
}

func reportPurchase(cmd *cobra.Command, st premium.PurchaseState, active bool) error {
	out := cmd.OutOrStdout()
	switch {
	case st.Status == premium.Failed:
		return errors.New(st.Message)
	case st.Status == premium.Idle:
		fmt.Fprintln(out, "Purchase cancelled.")
	case active:
		fmt.Fprintln(out, "Premium is active. Interstitials are off.")
	default:
		fmt.Fprintln(out, "No premium purchase found to restore.")
	}
	return nil
}

func init() {
	premiumCmd.AddCommand(premiumStatusCmd)
	premiumCmd.AddCommand(premiumSubscribeCmd)
	premiumCmd.AddCommand(premiumRestoreCmd)
}
