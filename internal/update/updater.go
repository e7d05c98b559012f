// Package update drives one run of the market data pipeline: per asset
// class it loads the prior document, decides the re-fetch window, fetches
// fresh observations, merges them without loss or duplication, persists the
// result, and republishes it.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketdata/internal/domain"
	"marketdata/internal/ghstore"
	"marketdata/internal/journal"
	"marketdata/internal/store"
	"marketdata/internal/universe"
)

// Epoch is the start of history for first runs and empty documents.
const Epoch = "2020-01-01"

// fallbackDays is the window applied when a document exists but carries no
// observations at all: five years back from today.
const fallbackDays = 1825

// ---------------------------------------------------------------------------
// Collaborator interfaces
// ---------------------------------------------------------------------------

// QuoteFetcher returns daily closing prices for one quoted instrument.
type QuoteFetcher interface {
	DailyCloses(ctx context.Context, symbol string, start time.Time) (domain.Series, error)
}

// RateFetcher returns daily yields for one government statistics series.
type RateFetcher interface {
	Observations(ctx context.Context, seriesID string, start time.Time) (domain.Series, error)
}

// LocalStore persists per-class documents on local disk.
type LocalStore interface {
	Read(class universe.Class) (domain.Document, bool, error)
	Write(class universe.Class, data []byte) error
}

// RemoteStore reads and writes per-class documents in the remote repository.
type RemoteStore interface {
	GetFile(ctx context.Context, path string) ([]byte, string, error)
	PutFile(ctx context.Context, path string, content []byte, message string) error
}

// RunJournal records per-class run outcomes.
type RunJournal interface {
	Append(ctx context.Context, rec journal.Record) (string, error)
}

// ---------------------------------------------------------------------------
// Updater
// ---------------------------------------------------------------------------

// Updater orchestrates the load → window → fetch → merge → persist → publish
// pipeline. remote and jour may be nil, which disables publishing and
// journaling respectively.
type Updater struct {
	local      LocalStore
	remote     RemoteStore
	quotes     QuoteFetcher
	rates      RateFetcher
	jour       RunJournal
	remotePath string // directory inside the remote repository
	now        func() time.Time
	log        *slog.Logger
}

// NewUpdater creates an Updater with the given collaborators.
func NewUpdater(local LocalStore, remote RemoteStore, quotes QuoteFetcher, rates RateFetcher, jour RunJournal, remotePath string, log *slog.Logger) *Updater {
	if log == nil {
		log = slog.Default()
	}
	return &Updater{
		local:      local,
		remote:     remote,
		quotes:     quotes,
		rates:      rates,
		jour:       jour,
		remotePath: remotePath,
		now:        time.Now,
		log:        log.With("component", "updater"),
	}
}

// RunAll processes every configured asset class in fixed order. A failure in
// one class is logged and journaled; the remaining classes still run.
func (u *Updater) RunAll(ctx context.Context, firstRun bool) {
	mode := "incremental"
	if firstRun {
		mode = "first_run"
	}
	u.log.Info("starting run", "mode", mode, "classes", len(universe.Classes()))

	for _, class := range universe.Classes() {
		if err := u.ProcessClass(ctx, class, firstRun); err != nil {
			u.log.Error("class failed", "class", class, "error", err)
		}
	}

	u.log.Info("run complete")
}

// ProcessClass runs the full pipeline for one asset class. The returned
// error has already been journaled; callers only log it.
func (u *Updater) ProcessClass(ctx context.Context, class universe.Class, firstRun bool) error {
	mode := "incremental"
	if firstRun {
		mode = "first_run"
	}
	log := u.log.With("class", class)

	existing, err := u.loadExisting(ctx, class)
	if err != nil {
		u.journalRun(ctx, class, mode, "", 0, 0, journal.StatusFailed, err)
		return err
	}
	log.Info("loaded existing document", "instruments", len(existing))

	startDate := windowStart(existing, firstRun, u.now())
	start, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		err = fmt.Errorf("parsing window start %q: %w", startDate, err)
		u.journalRun(ctx, class, mode, startDate, 0, 0, journal.StatusFailed, err)
		return err
	}
	log.Info("fetch window decided", "start", startDate)

	fresh := u.fetchClass(ctx, class, start, log)

	if len(fresh) == 0 {
		log.Info("no data fetched, keeping prior document")
		u.journalRun(ctx, class, mode, startDate, 0, 0, journal.StatusNoData, nil)
		return nil
	}

	merged := mergeDocument(existing, fresh)

	data, err := store.Encode(merged)
	if err != nil {
		u.journalRun(ctx, class, mode, startDate, 0, 0, journal.StatusFailed, err)
		return err
	}
	if err := u.local.Write(class, data); err != nil {
		u.journalRun(ctx, class, mode, startDate, 0, 0, journal.StatusFailed, err)
		return err
	}

	u.publish(ctx, class, data, log)

	instruments, records := len(merged), merged.Records()
	log.Info("class updated", "instruments", instruments, "records", records)
	u.journalRun(ctx, class, mode, startDate, instruments, records, journal.StatusOK, nil)
	return nil
}

// ---------------------------------------------------------------------------
// Pipeline steps
// ---------------------------------------------------------------------------

// loadExisting returns the class's prior document: local file first, then
// the remote store (cached back to local on success), then empty.
func (u *Updater) loadExisting(ctx context.Context, class universe.Class) (domain.Document, error) {
	doc, ok, err := u.local.Read(class)
	if err != nil {
		return nil, err
	}
	if ok {
		return doc, nil
	}

	if u.remote != nil {
		data, _, err := u.remote.GetFile(ctx, u.remoteFile(class))
		if err == nil {
			var remote domain.Document
			if err := json.Unmarshal(data, &remote); err != nil {
				u.log.Warn("remote document unreadable", "class", class, "error", err)
			} else {
				if err := u.local.Write(class, data); err != nil {
					u.log.Warn("caching remote document failed", "class", class, "error", err)
				}
				return remote, nil
			}
		} else if !errors.Is(err, ghstore.ErrNotFound) {
			u.log.Warn("remote read failed", "class", class, "error", err)
		}
	}

	return domain.Document{}, nil
}

// windowStart decides the re-fetch start date for a class.
//
// First runs and empty documents re-fetch full history from the epoch.
// Otherwise the window opens one day before the latest observed date across
// all instruments: the overlap deliberately re-fetches the boundary day so
// late source revisions are picked up by the merge's last-write-wins rule.
// A document with instruments but zero observations falls back to five
// years before today.
func windowStart(existing domain.Document, firstRun bool, now time.Time) string {
	if firstRun || len(existing) == 0 {
		return Epoch
	}
	latest, ok := existing.LatestDate()
	if !ok {
		return now.AddDate(0, 0, -fallbackDays).Format(domain.DateFormat)
	}
	t, err := time.Parse(domain.DateFormat, latest)
	if err != nil {
		// Unparseable dates mean a corrupt document; refetch full history.
		return Epoch
	}
	return t.AddDate(0, 0, -1).Format(domain.DateFormat)
}

// fetchClass fetches fresh series per instrument. Failures and empty
// results are logged and skipped; the instrument's prior data stays put and
// it is retried on the next run.
func (u *Updater) fetchClass(ctx context.Context, class universe.Class, start time.Time, log *slog.Logger) map[string]domain.Series {
	fresh := make(map[string]domain.Series)
	for _, inst := range universe.Instruments(class) {
		var series domain.Series
		var err error
		if class == universe.USRates {
			series, err = u.rates.Observations(ctx, inst.Symbol, start)
		} else {
			series, err = u.quotes.DailyCloses(ctx, inst.Symbol, start)
		}
		if err != nil {
			log.Warn("fetch failed", "instrument", inst.Name, "symbol", inst.Symbol, "error", err)
			continue
		}
		if len(series) == 0 {
			log.Info("no data", "instrument", inst.Name, "symbol", inst.Symbol)
			continue
		}
		log.Info("fetched", "instrument", inst.Name, "symbol", inst.Symbol, "observations", len(series))
		fresh[inst.Symbol] = series
	}
	return fresh
}

// mergeDocument overlays freshly fetched series onto the existing document.
// Every prior instrument is kept even when the fetch returned nothing for
// it, so the persisted instrument set never shrinks. Per instrument, dates
// are unioned with fresh values winning on overlap.
func mergeDocument(existing domain.Document, fresh map[string]domain.Series) domain.Document {
	merged := make(domain.Document, len(existing)+len(fresh))
	for ric, entry := range existing {
		merged[ric] = entry
	}
	for symbol, series := range fresh {
		ric := universe.RIC(symbol)
		prior := merged[ric].Data
		merged[ric] = domain.Entry{
			Name: universe.DisplayName(symbol),
			Data: prior.Merge(series),
		}
	}
	return merged
}

// publish uploads the written document to the remote store. Failures are
// logged, not propagated: publishing is best-effort and local state is
// already durable.
func (u *Updater) publish(ctx context.Context, class universe.Class, data []byte, log *slog.Logger) {
	if u.remote == nil {
		log.Info("publishing disabled, skipping upload")
		return
	}
	message := fmt.Sprintf("Update %s data - %s", class, u.now().Format(domain.DateFormat))
	if err := u.remote.PutFile(ctx, u.remoteFile(class), data, message); err != nil {
		log.Warn("publish failed", "error", err)
		return
	}
	log.Info("published", "path", u.remoteFile(class))
}

func (u *Updater) remoteFile(class universe.Class) string {
	return u.remotePath + "/" + string(class) + ".json"
}

func (u *Updater) journalRun(ctx context.Context, class universe.Class, mode, window string, instruments, records int, status string, runErr error) {
	if u.jour == nil {
		return
	}
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	if _, err := u.jour.Append(ctx, journal.Record{
		Class:       string(class),
		Mode:        mode,
		WindowStart: window,
		Instruments: instruments,
		Records:     records,
		Status:      status,
		Error:       errText,
	}); err != nil {
		u.log.Warn("journal append failed", "class", class, "error", err)
	}
}
