package catalog

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"CotizaLab/cache"
	"CotizaLab/models"
)

const (
	snapshotCacheKey = "arancel_snapshot"
	snapshotExpiry   = 30 * 24 * time.Hour

	// code, name, benefit, copay, general price, preferential price
	workbookColumns = 6
)

// Loader reads the arancel spreadsheet once and keeps the parsed catalog
// for the process lifetime. After a successful parse the rows are
// snapshotted into Redis; if the file is later missing or malformed at
// startup, the last good snapshot is served instead.
type Loader struct {
	path  string
	cache *cache.Cache

	mu      sync.Mutex
	catalog *Catalog
}

// NewLoader creates a loader for the workbook at path. The cache may be
// nil, which disables the snapshot fallback.
func NewLoader(path string, cache *cache.Cache) *Loader {
	return &Loader{path: path, cache: cache}
}

// Get returns the cached catalog, loading it on first use. A load
// failure with no usable snapshot reports ErrCatalogUnavailable; the
// next call tries again.
func (l *Loader) Get(ctx context.Context) (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.catalog != nil {
		return l.catalog, nil
	}

	entries, err := readWorkbook(l.path)
	if err != nil {
		snapshot, snapErr := l.fromSnapshot(ctx)
		if snapErr != nil {
			log.Printf("arancel load failed: %v (snapshot fallback: %v)", err, snapErr)
			return nil, models.ErrCatalogUnavailable
		}
		log.Printf("arancel file unavailable (%v), serving redis snapshot with %d entries", err, snapshot.Len())
		l.catalog = snapshot
		return l.catalog, nil
	}

	l.catalog = New(entries)
	l.storeSnapshot(ctx, l.catalog.Entries())
	log.Printf("arancel loaded from %s: %d entries", l.path, l.catalog.Len())
	return l.catalog, nil
}

func (l *Loader) fromSnapshot(ctx context.Context) (*Catalog, error) {
	if l.cache == nil {
		return nil, errors.New("no cache configured")
	}
	raw, err := l.cache.Get(ctx, snapshotCacheKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read arancel snapshot")
	}
	if raw == "" {
		return nil, errors.New("no arancel snapshot stored")
	}
	var entries []models.PriceCatalogEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, errors.Wrap(err, "failed to decode arancel snapshot")
	}
	return New(entries), nil
}

func (l *Loader) storeSnapshot(ctx context.Context, entries []models.PriceCatalogEntry) {
	if l.cache == nil {
		return
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		log.Printf("failed to marshal arancel snapshot: %v", err)
		return
	}
	if err := l.cache.Set(ctx, snapshotCacheKey, payload, snapshotExpiry); err != nil {
		log.Printf("failed to store arancel snapshot: %v", err)
	}
}

// readWorkbook parses the six fixed columns of the arancel sheet. The
// first row is the header and is skipped.
func readWorkbook(path string) ([]models.PriceCatalogEntry, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open arancel workbook")
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read arancel rows")
	}
	if len(rows) < 2 {
		return nil, errors.New("arancel workbook has no data rows")
	}

	entries := make([]models.PriceCatalogEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) < workbookColumns {
			return nil, errors.Errorf("arancel row %d has %d columns, want %d", i+2, len(row), workbookColumns)
		}
		entry := models.PriceCatalogEntry{
			Code: NormalizeCode(row[0]),
			Name: strings.TrimSpace(row[1]),
		}
		amounts := []*int64{&entry.BenefitValue, &entry.CopayValue, &entry.GeneralPrice, &entry.PreferentialPrice}
		for j, target := range amounts {
			amount, err := parseAmount(row[2+j])
			if err != nil {
				return nil, errors.Wrapf(err, "arancel row %d column %d", i+2, 3+j)
			}
			*target = amount
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseAmount accepts the integral-peso cell values the issuing process
// writes, tolerating the ".0" float artifact and thousands separators.
func parseAmount(cell string) (int64, error) {
	cleaned := strings.TrimSpace(cell)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount %q", cell)
	}
	if value < 0 {
		return 0, errors.Errorf("negative amount %q", cell)
	}
	return int64(math.Round(value)), nil
}
