// calgrid prints a computed calendar view for a date from the local
// store, as indented JSON. Useful for inspecting what the daemon would
// serve without running it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/calgrid/calgrid/config"
	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/service"
	"github.com/calgrid/calgrid/internal/storage"
)

func main() {
	viewFlag := flag.String("view", "month", "view to compute: month, week, day or agenda")
	dateFlag := flag.String("date", "", "anchor date (2006-01-02); defaults to today")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	log := logger.WithField("app", "calgrid")

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}

	view, err := domain.ParseView(*viewFlag)
	if err != nil {
		fatal("%v", err)
	}

	anchor := time.Now().In(cfg.Location)
	if *dateFlag != "" {
		anchor, err = time.ParseInLocation("2006-01-02", *dateFlag, cfg.Location)
		if err != nil {
			fatal("invalid date %q: %v", *dateFlag, err)
		}
	}

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		fatal("open storage: %v", err)
	}
	defer store.Close()

	svc := service.NewViewService(store, cfg, log)
	if err := svc.Refresh(); err != nil {
		fatal("load snapshot: %v", err)
	}

	var payload interface{}
	switch view {
	case domain.ViewMonth:
		payload, err = svc.MonthView(anchor)
	case domain.ViewWeek:
		payload, err = svc.WeekView(anchor)
	case domain.ViewDay:
		payload, err = svc.DayView(anchor)
	case domain.ViewAgenda:
		payload, err = svc.AgendaView(anchor)
	}
	if err != nil {
		fatal("compute view: %v", err)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fatal("encode view: %v", err)
	}
	fmt.Println(string(out))
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
