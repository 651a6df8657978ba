// Package store serializes the account to the flat escaped pipe-delimited
// save file and loads it back. Loading is defensive: malformed lines are
// skipped with a diagnostic, and every balance is recomputed from the
// transaction log instead of trusting the stored summaries.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/minhngvn/finman/internal/account"
	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
	"github.com/minhngvn/finman/internal/record"
)

// DefaultPath is the save file location when no config overrides it.
const DefaultPath = "data/save/finance_save.txt"

const (
	balancePrefix = "BALANCE "
	hdrSettings   = "SETTINGS"
	hdrInterests  = "INTERESTS"
	hdrAllocs     = "ALLOCATIONS"
	hdrCategories = "CATEGORIES"
	hdrSchedules  = "SCHEDULES"
	hdrTxs        = "TXS"
)

const (
	interestFields = 5
	allocFields    = 2
	categoryFields = 2
	scheduleFields = 7
	txFields       = 4
)

// balanceTolerance is the largest stored-vs-recomputed total difference that
// passes without a diagnostic.
var balanceTolerance = decimal.NewFromFloat(0.01)

// Store reads and writes save files.
type Store struct {
	log *logrus.Logger
}

// New creates a Store that reports skipped lines and reconciliation
// mismatches on log.
func New(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{log: log}
}

// Save writes the whole account to path: temp file first, then an atomic
// rename into place, so a crash mid-write cannot leave a half-written store.
// The in-memory account is untouched on failure.
func (s *Store) Save(path string, a *account.Account) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating save dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp save file: %w", err)
	}

	w := bufio.NewWriter(f)
	writeErr := writeSections(w, a)
	if writeErr == nil {
		writeErr = w.Flush()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing save file: %w", writeErr)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing save file: %w", err)
	}
	return nil
}

func writeSections(w io.Writer, a *account.Account) error {
	var lines []string
	lines = append(lines, balancePrefix+a.Balance.String())

	lines = append(lines, hdrSettings)
	lines = append(lines, record.Join([]string{"AUTO_SAVE", boolField(a.Settings.AutoSave)}))
	lines = append(lines, record.Join([]string{"AUTO_PROCESS_STARTUP", boolField(a.Settings.AutoProcessOnStartup)}))
	lines = append(lines, record.Join([]string{"LANGUAGE", a.Settings.Language}))

	lines = append(lines, hdrInterests)
	for _, rule := range a.InterestRules() {
		display := a.DisplayNames[rule.Category]
		if display == "" {
			display = string(rule.Category)
		}
		lines = append(lines, record.Join([]string{
			display,
			rule.RatePercent.String(),
			boolField(rule.Monthly),
			calendar.FormatDate(rule.StartDate),
			calendar.FormatDate(rule.LastApplied),
		}))
	}

	lines = append(lines, hdrAllocs)
	for _, c := range a.Categories() {
		lines = append(lines, record.Join([]string{c.Display, c.Percent.String()}))
	}

	lines = append(lines, hdrCategories)
	for _, c := range a.Categories() {
		lines = append(lines, record.Join([]string{c.Display, c.Balance.String()}))
	}

	lines = append(lines, hdrSchedules)
	for _, sch := range a.Schedules {
		lines = append(lines, record.Join([]string{
			string(sch.Type),
			fmt.Sprintf("%d", sch.Param),
			sch.Amount.String(),
			boolField(sch.AutoAllocate),
			calendar.FormatDate(sch.NextDate),
			sch.Category,
			sch.Note,
		}))
	}

	lines = append(lines, hdrTxs)
	for _, t := range a.Transactions {
		lines = append(lines, record.Join([]string{
			calendar.FormatDate(t.Date),
			t.Amount.String(),
			t.Category,
			t.Note,
		}))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBoolField(s string) bool {
	return s == "1" || s == "true"
}

// Load reads a save file into a fresh account. A missing file returns
// (nil, nil): the caller decides between fresh setup and retry. Malformed
// lines are skipped with a diagnostic; load itself only fails on I/O errors.
func (s *Store) Load(path string) (*account.Account, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening save file: %w", err)
	}
	defer f.Close()

	a, err := s.read(f)
	if err != nil {
		return nil, fmt.Errorf("reading save file %s: %w", path, err)
	}
	return a, nil
}

type section int

const (
	secNone section = iota
	secSettings
	secInterests
	secAllocs
	secCategories
	secSchedules
	secTxs
)

func (s *Store) read(r io.Reader) (*account.Account, error) {
	a := account.Empty(s.log)

	var (
		sec         = secNone
		storedTotal decimal.Decimal
		hadTotal    bool
		storedCats  = make(map[model.CategoryKey]decimal.Decimal)
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case hdrSettings:
			sec = secSettings
			continue
		case hdrInterests:
			sec = secInterests
			continue
		case hdrAllocs:
			sec = secAllocs
			continue
		case hdrCategories:
			sec = secCategories
			continue
		case hdrSchedules:
			sec = secSchedules
			continue
		case hdrTxs:
			sec = secTxs
			continue
		}

		if strings.HasPrefix(line, balancePrefix) {
			v, err := decimal.NewFromString(strings.TrimSpace(line[len(balancePrefix):]))
			if err != nil {
				s.log.Warnf("invalid BALANCE value %q; ignoring", line[len(balancePrefix):])
				continue
			}
			storedTotal = v
			hadTotal = true
			continue
		}

		switch sec {
		case secSettings:
			s.readSetting(a, line)
		case secInterests:
			s.readInterest(a, line)
		case secAllocs:
			s.readAllocation(a, line)
		case secCategories:
			s.readCategory(a, line, storedCats)
		case secSchedules:
			s.readSchedule(a, line)
		case secTxs:
			s.readTransaction(a, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	s.reconcile(a, storedCats, storedTotal, hadTotal)
	return a, nil
}

func (s *Store) readSetting(a *account.Account, line string) {
	parts := record.Split(line)
	if len(parts) != 2 {
		s.log.Warnf("skipping settings line %q: want key|value", line)
		return
	}
	switch parts[0] {
	case "AUTO_SAVE":
		a.Settings.AutoSave = parseBoolField(parts[1])
	case "AUTO_PROCESS_STARTUP":
		a.Settings.AutoProcessOnStartup = parseBoolField(parts[1])
	case "LANGUAGE":
		a.Settings.Language = parts[1]
	default:
		s.log.Warnf("unknown settings key %q; ignoring", parts[0])
	}
}

func (s *Store) readInterest(a *account.Account, line string) {
	parts := record.Split(line)
	if len(parts) != interestFields {
		s.log.Warnf("skipping interest line %q: want %d fields, got %d", line, interestFields, len(parts))
		return
	}
	rate, err := decimal.NewFromString(parts[1])
	if err != nil {
		s.log.Warnf("skipping interest line for %q: bad rate %q", parts[0], parts[1])
		return
	}
	start, err := calendar.ParseDate(parts[3])
	if err != nil {
		s.log.Warnf("skipping interest line for %q: %v", parts[0], err)
		return
	}
	last, err := calendar.ParseDate(parts[4])
	if err != nil {
		s.log.Warnf("skipping interest line for %q: %v", parts[0], err)
		return
	}

	display := parts[0]
	key := model.NormalizeCategory(display)
	a.Interest[key] = model.InterestRule{
		Category:    key,
		RatePercent: rate,
		Monthly:     parseBoolField(parts[2]),
		StartDate:   start,
		LastApplied: last,
	}
	registerDisplay(a, key, display)
}

func (s *Store) readAllocation(a *account.Account, line string) {
	parts := record.Split(line)
	if len(parts) != allocFields {
		s.log.Warnf("skipping allocation line %q: want %d fields, got %d", line, allocFields, len(parts))
		return
	}
	pct, err := decimal.NewFromString(parts[1])
	if err != nil {
		s.log.Warnf("skipping allocation line for %q: bad percent %q", parts[0], parts[1])
		return
	}
	key := model.NormalizeCategory(parts[0])
	a.AllocationPct[key] = pct
	registerDisplay(a, key, parts[0])
}

func (s *Store) readCategory(a *account.Account, line string, storedCats map[model.CategoryKey]decimal.Decimal) {
	parts := record.Split(line)
	if len(parts) != categoryFields {
		s.log.Warnf("skipping category line %q: want %d fields, got %d", line, categoryFields, len(parts))
		return
	}
	balance, err := decimal.NewFromString(parts[1])
	if err != nil {
		s.log.Warnf("skipping category line for %q: bad balance %q", parts[0], parts[1])
		return
	}
	key := model.NormalizeCategory(parts[0])
	storedCats[key] = balance
	registerDisplay(a, key, parts[0])
}

func (s *Store) readSchedule(a *account.Account, line string) {
	parts := record.Split(line)
	if len(parts) != scheduleFields {
		s.log.Warnf("skipping schedule line %q: want %d fields, got %d", line, scheduleFields, len(parts))
		return
	}
	typ := model.ScheduleType(parts[0])
	if typ != model.EveryXDays && typ != model.MonthlyDay {
		s.log.Warnf("skipping schedule line %q: unknown type %q", line, parts[0])
		return
	}
	var param int
	if _, err := fmt.Sscanf(parts[1], "%d", &param); err != nil {
		s.log.Warnf("skipping schedule line %q: bad param %q", line, parts[1])
		return
	}
	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		s.log.Warnf("skipping schedule line %q: bad amount %q", line, parts[2])
		return
	}
	next, err := calendar.ParseDate(parts[4])
	if err != nil {
		s.log.Warnf("skipping schedule line %q: %v", line, err)
		return
	}

	// Out-of-range params load fine; the processor skips them so they
	// survive round-trips unchanged.
	a.Schedules = append(a.Schedules, model.Schedule{
		Type:         typ,
		Param:        param,
		Amount:       amount,
		AutoAllocate: parseBoolField(parts[3]),
		NextDate:     next,
		Category:     parts[5],
		Note:         parts[6],
	})
}

func (s *Store) readTransaction(a *account.Account, line string) {
	parts := record.Split(line)
	if len(parts) != txFields {
		s.log.Warnf("skipping transaction line %q: want %d fields, got %d", line, txFields, len(parts))
		return
	}
	date, err := calendar.ParseDate(parts[0])
	if err != nil {
		s.log.Warnf("skipping transaction line %q: %v", line, err)
		return
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		s.log.Warnf("skipping transaction line %q: bad amount %q", line, parts[1])
		return
	}
	a.Transactions = append(a.Transactions, model.Transaction{
		Date:     date,
		Amount:   amount,
		Category: parts[2],
		Note:     parts[3],
	})
	registerDisplay(a, model.NormalizeCategory(parts[2]), parts[2])
}

func registerDisplay(a *account.Account, key model.CategoryKey, display string) {
	if _, ok := a.DisplayNames[key]; !ok {
		a.DisplayNames[key] = display
	}
}

// reconcile rebuilds every derived balance from the transaction log. Stored
// category balances only survive for categories with no transactions; the
// stored total only survives when there are no transactions at all.
func (s *Store) reconcile(a *account.Account, storedCats map[model.CategoryKey]decimal.Decimal, storedTotal decimal.Decimal, hadTotal bool) {
	recomputed := make(map[model.CategoryKey]decimal.Decimal)
	for _, t := range a.Transactions {
		key := model.NormalizeCategory(t.Category)
		recomputed[key] = recomputed[key].Add(t.Amount)
	}
	for key, balance := range storedCats {
		if _, ok := recomputed[key]; !ok {
			recomputed[key] = balance
		}
	}
	a.CategoryBalances = recomputed

	// Parallel-map invariant across all three maps.
	for key := range a.AllocationPct {
		if _, ok := a.CategoryBalances[key]; !ok {
			a.CategoryBalances[key] = decimal.Zero
		}
	}
	for key := range a.DisplayNames {
		if _, ok := a.CategoryBalances[key]; !ok {
			a.CategoryBalances[key] = decimal.Zero
		}
	}
	for key := range a.CategoryBalances {
		if _, ok := a.AllocationPct[key]; !ok {
			a.AllocationPct[key] = decimal.Zero
		}
		if _, ok := a.DisplayNames[key]; !ok {
			a.DisplayNames[key] = string(key)
		}
	}

	if len(a.Transactions) == 0 {
		if hadTotal {
			// Nothing to recompute from; the stored value is provisional.
			a.Balance = storedTotal
		}
		return
	}

	total := decimal.Zero
	for _, t := range a.Transactions {
		total = total.Add(t.Amount)
	}
	if hadTotal && storedTotal.Sub(total).Abs().GreaterThan(balanceTolerance) {
		s.log.Warnf("stored BALANCE %s differs from recomputed %s; using recomputed", storedTotal, total)
	}
	a.Balance = total
}
