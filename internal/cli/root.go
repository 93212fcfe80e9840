package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Domenick1991/pestbooking/config"
	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	today      string
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "pestbook",
		Short:         "Inspect the booking calendar, form rules and service packs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "path to config.yaml (built-in defaults when empty)")
	root.PersistentFlags().StringVar(&opts.today, "today", "", "evaluate as if today were YYYY-MM-DD")

	root.AddCommand(newWeekCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newPacksCmd(opts))
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *options) load() (*config.Config, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(o.configPath)
}

// env loads the config and returns the evaluator and today's date in the
// configured timezone.
func (o *options) env() (*config.Config, *calendar.Evaluator, calendar.Date, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, calendar.Date{}, err
	}
	holidays, err := calendar.NewHolidaySet(cfg.Holidays)
	if err != nil {
		return nil, nil, calendar.Date{}, err
	}
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, nil, calendar.Date{}, err
	}

	today := calendar.Today(time.Now(), loc)
	if o.today != "" {
		if today, err = calendar.ParseDate(o.today); err != nil {
			return nil, nil, calendar.Date{}, fmt.Errorf("invalid --today: %w", err)
		}
	}
	return cfg, calendar.NewEvaluator(holidays), today, nil
}
