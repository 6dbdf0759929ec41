package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/tillbook"
	"github.com/smileynet/tillbook/internal/browse"
	"github.com/smileynet/tillbook/internal/config"
	"github.com/smileynet/tillbook/internal/contact"
	"github.com/smileynet/tillbook/internal/logging"
	"github.com/smileynet/tillbook/internal/pricing"
	"github.com/smileynet/tillbook/internal/prompt"
	"github.com/smileynet/tillbook/internal/receipt"
	"github.com/smileynet/tillbook/internal/session"
	"github.com/smileynet/tillbook/internal/state"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
)

// Globals holds flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Config file to use instead of the user and project files." placeholder:"PATH"`
}

// CLI is the top-level command structure for tillbook.
type CLI struct {
	Globals

	Bill     BillCmd     `cmd:"" help:"Ring up a customer and print a receipt."`
	Contacts ContactsCmd `cmd:"" help:"Manage the contact book."`
	Items    ItemsCmd    `cmd:"" help:"Print the price list."`
}

// BillCmd runs one billing checkout.
type BillCmd struct {
	Receipt string `help:"PDF receipt path (overrides billing.receipt)." placeholder:"PATH"`
	NoPDF   bool   `name:"no-pdf" help:"Print the receipt without writing a PDF." default:"false"`
	Plain   bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// ContactsCmd runs the contact manager.
type ContactsCmd struct {
	File   string `help:"Contacts file (overrides contacts.file)." placeholder:"PATH"`
	Browse bool   `help:"Open the read-only contact browser (requires a TTY)." default:"false"`
	Plain  bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// ItemsCmd prints the catalog.
type ItemsCmd struct{}

// loadConfig loads layered config from user and project paths with env
// overrides. An explicit path replaces both layers and must exist.
func loadConfig(explicit string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/tillbook/config.yaml"),
		".tillbook/config.yaml",
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		paths = []string{explicit}
	}

	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads and validates config after applying overrides, then builds
// the logger.
func setup(g *Globals, override func(*config.Config)) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// loadCatalog returns the configured price list or the built-in one.
func loadCatalog(cfg *config.Config) (*pricing.Catalog, error) {
	if cfg.Billing.Catalog == "" {
		return pricing.DefaultCatalog(), nil
	}
	return pricing.LoadCatalog(cfg.Billing.Catalog)
}

// Run executes the bill command.
func (b *BillCmd) Run(g *Globals) error {
	cfg, logger, err := setup(g, func(c *config.Config) {
		if b.Receipt != "" {
			c.Billing.Receipt = b.Receipt
		}
	})
	if err != nil {
		return fmt.Errorf("bill: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return runBill(os.Stdin, os.Stdout, cfg, logger, b.NoPDF, session.NewTheme(os.Stdout, b.Plain))
}

// runBill builds the billing session from cfg and runs one checkout.
func runBill(in io.Reader, out io.Writer, cfg *config.Config, logger *zap.Logger, noPDF bool, theme session.Theme) error {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("bill: %w", err)
	}
	text, err := receipt.NewText(tillbook.OverlayFS(cfg.Billing.Templates, tillbook.Templates))
	if err != nil {
		return fmt.Errorf("bill: %w", err)
	}

	var doc session.Document
	opts := session.BillingOptions{
		StoreName: cfg.Billing.StoreName,
		Location:  cfg.Billing.Location,
		TaxRate:   cfg.Billing.TaxRate,
	}
	if !noPDF {
		doc = receipt.PDF{}
		opts.ReceiptPath = cfg.Billing.Receipt
	}

	p := prompt.New(in, out,
		prompt.WithMaxAttempts(cfg.Billing.MaxAttempts),
		prompt.WithWarnStyle(theme.Warn),
	)
	logger.Info("billing started",
		zap.Int("items", len(catalog.Items())),
		zap.Float64("tax_rate", cfg.Billing.TaxRate),
		zap.String("receipt", opts.ReceiptPath),
	)
	if err := session.NewBilling(catalog, p, theme, text, doc, opts).Run(); err != nil {
		logger.Error("billing failed", zap.Error(err))
		return fmt.Errorf("bill: %w", err)
	}
	return nil
}

// Run executes the contacts command.
func (c *ContactsCmd) Run(g *Globals) error {
	cfg, logger, err := setup(g, func(cfg *config.Config) {
		if c.File != "" {
			cfg.Contacts.File = c.File
		}
	})
	if err != nil {
		return fmt.Errorf("contacts: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	repo := state.NewFileStore(cfg.Contacts.File)
	store := contact.Open(repo, contact.WithLogger(logger))
	logger.Info("contacts opened", zap.String("file", repo.Path()), zap.Int("count", store.Len()))
	if c.Browse {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return errors.New("contacts: --browse requires a terminal (TTY)")
		}
		return browse.Run(store, os.Stdin, os.Stdout)
	}
	return runContacts(os.Stdin, os.Stdout, cfg, store, session.NewTheme(os.Stdout, c.Plain))
}

// runContacts runs the contact manager menu over store.
func runContacts(in io.Reader, out io.Writer, cfg *config.Config, store *contact.Store, theme session.Theme) error {
	p := prompt.New(in, out,
		prompt.WithMaxAttempts(cfg.Contacts.MaxAttempts),
		prompt.WithWarnStyle(theme.Warn),
	)
	if err := session.NewContacts(store, p, theme).Run(); err != nil {
		return fmt.Errorf("contacts: %w", err)
	}
	return nil
}

// Run executes the items command.
func (i *ItemsCmd) Run(g *Globals) error {
	cfg, logger, err := setup(g, nil)
	if err != nil {
		return fmt.Errorf("items: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	return runItems(os.Stdout, cfg)
}

// runItems prints the configured price list.
func runItems(w io.Writer, cfg *config.Config) error {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("items: %w", err)
	}
	_, _ = fmt.Fprint(w, catalog.Listing())
	return nil
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	return exitFailure
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tillbook"),
		kong.Description("Grocery checkout and contact book for the shop counter."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
