package main

import (
	"github.com/spf13/cobra"

	"finitefield.org/hanko-blocks/internal/blocks"
	"finitefield.org/hanko-blocks/internal/catalog"
	"finitefield.org/hanko-blocks/internal/platform/config"
)

type app struct {
	loadConfig func() (config.Config, error)
	currency   string
	lang       string
}

func newRootCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	a := &app{loadConfig: loadConfig}

	root := &cobra.Command{
		Use:          "blockctl",
		Short:        "Inspect and render Hanko UI blocks",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.currency, "currency", "", "ISO 4217 currency (default from BLOCKS_DEFAULT_CURRENCY)")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "display language (default from BLOCKS_DEFAULT_LANG)")

	root.AddCommand(a.listCmd(), a.renderCmd(), a.summaryCmd())
	return root
}

// locale merges flags over the configured display defaults.
func (a *app) locale() (blocks.Locale, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return blocks.Locale{}, err
	}
	l := blocks.Locale{Currency: a.currency, Lang: a.lang}
	l.SetLocale(blocks.Locale{Currency: cfg.Display.Currency, Lang: cfg.Display.Lang})
	return l, nil
}

func (a *app) catalog() (*catalog.StaticService, blocks.Locale, error) {
	l, err := a.locale()
	if err != nil {
		return nil, blocks.Locale{}, err
	}
	svc, err := catalog.NewStaticService(catalog.WithLocale(l))
	if err != nil {
		return nil, blocks.Locale{}, err
	}
	return svc, l, nil
}
