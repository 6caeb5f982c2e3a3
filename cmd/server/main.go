package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"worktime-backend/internal/config"
	"worktime-backend/internal/db"
	"worktime-backend/internal/holiday"
	"worktime-backend/internal/routes"
)

var rootCmd = &cobra.Command{
	Use:   "worktime-server",
	Short: "Work-time overview backend",
	Long:  `Serves daily, weekly and monthly work-time summaries from clock-in/clock-out logs and pushes threshold notifications to subscribers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var holidaysCmd = &cobra.Command{
	Use:   "holidays [year]",
	Short: "Print the holiday calendar for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := time.Now().Year()
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			year = parsed
		}

		calendar, err := loadCalendar(os.Getenv("HOLIDAY_RULES"))
		if err != nil {
			return err
		}
		for _, date := range calendar.ForYear(year) {
			fmt.Println(date.Format("2006-01-02 Monday"))
		}
		return nil
	},
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger error: %w", err)
	}

	database, err := db.Open(cfg.DbDriver, cfg.DbDsn)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	calendar, err := loadCalendar(cfg.HolidayRulesPath)
	if err != nil {
		return fmt.Errorf("holiday rules error: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, database, calendar, cfg, logger)

	logger.WithFields(logrus.Fields{
		"addr":   cfg.Addr,
		"driver": cfg.DbDriver,
	}).Info("starting server")

	return router.Run(cfg.Addr)
}

func loadCalendar(path string) (*holiday.Calendar, error) {
	if path == "" {
		return holiday.Default(), nil
	}
	return holiday.Load(path)
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(io.MultiWriter(os.Stdout, file))
	}

	return logger, nil
}

func main() {
	rootCmd.AddCommand(serveCmd, holidaysCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
