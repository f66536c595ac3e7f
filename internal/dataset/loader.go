package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultSourceURL is the NYC Open Data CSV export of the historic shooting
// incident dataset.
const DefaultSourceURL = "https://data.cityofnewyork.us/api/views/833y-fsy8/rows.csv?accessType=DOWNLOAD"

// RawTable is the dataset as loaded: a header and untyped string rows.
type RawTable struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// Column returns the index of the named column, matching case-insensitively.
func (t *RawTable) Column(name string) (int, bool) {
	idx, ok := t.index[strings.ToLower(name)]
	return idx, ok
}

// Fetch retrieves the source CSV and decodes it. The source may be an HTTP(S)
// URL or a local file path (useful for offline reruns). Any failure here is
// fatal to the run; there is no retry or fallback source.
func Fetch(ctx context.Context, source string, timeout time.Duration) (*RawTable, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open source file: %w", err)
		}
		defer f.Close()
		return Decode(f)
	}

	body, err := open(ctx, source, timeout)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return Decode(body)
}

// Download streams the source CSV to a local file without decoding it.
func Download(ctx context.Context, source, path string, timeout time.Duration) (int64, error) {
	body, err := open(ctx, source, timeout)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	n, err := io.Copy(f, body)
	if err != nil {
		return n, fmt.Errorf("write output file: %w", err)
	}
	return n, nil
}

func open(ctx context.Context, url string, timeout time.Duration) (io.ReadCloser, error) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, fmt.Errorf("fetch: unexpected status %s: %s", resp.Status, string(b))
	}
	return resp.Body, nil
}

// Decode reads CSV content into a RawTable and verifies the required columns
// are present. A missing required column is a schema mismatch.
func Decode(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode csv: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &RawTable{Header: header, index: make(map[string]int, len(header))}
	for i, h := range header {
		t.index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := t.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		if len(rec) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, rec)
			rec = tmp
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
