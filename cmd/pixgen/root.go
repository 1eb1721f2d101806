package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Niiaks/pixcode/internal/pix"
	"github.com/Niiaks/pixcode/internal/render"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pixgen",
		Short:         "pixgen - static Pix BR Code generator",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(generateCmd())
	return root
}

func generateCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PIXGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a copy-and-paste BR Code payload",
		Long: `Builds a static Pix BR Code and prints the payload.

Every flag can also be set through the environment, e.g. PIXGEN_KEY,
PIXGEN_KEY_TYPE, PIXGEN_NAME, PIXGEN_CITY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keyType, err := pix.ParseKeyType(v.GetString("key-type"))
			if err != nil {
				return err
			}

			payload, err := pix.Generate(pix.PaymentRequest{
				Key:            v.GetString("key"),
				KeyType:        keyType,
				MerchantName:   v.GetString("name"),
				MerchantCity:   v.GetString("city"),
				Amount:         v.GetString("amount"),
				ReferenceLabel: v.GetString("reference"),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), payload)

			if path := v.GetString("png"); path != "" {
				png, err := render.NewQRRenderer(v.GetInt("size")).Render(payload)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, png, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "QR code written to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringP("key", "k", "", "Pix key")
	cmd.Flags().StringP("key-type", "t", "random", "Key type (cpf, cnpj, email, phone, random)")
	cmd.Flags().StringP("name", "n", "", "Merchant name")
	cmd.Flags().StringP("city", "c", "", "Merchant city")
	cmd.Flags().StringP("amount", "a", "", "Fixed amount, e.g. 10.50 (blank lets the payer choose)")
	cmd.Flags().StringP("reference", "r", "", "Reference label (txid)")
	cmd.Flags().String("png", "", "Also write the QR code PNG to this file")
	cmd.Flags().Int("size", render.DefaultSize, "PNG size in pixels")

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}

	return cmd
}
