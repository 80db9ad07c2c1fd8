// Package jsonl persists clipboard history as JSON Lines.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/clipview"
)

// maxLineSize is the maximum size for a single JSONL line (4MB).
// Content is capped well below this; the headroom covers escaping.
const maxLineSize = 4 * 1024 * 1024

// record is the on-disk shape of an item. An empty source app is stored as
// null.
type record struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	Timestamp int64   `json:"timestamp"`
	SourceApp *string `json:"source_app"`
}

func toRecord(it clipview.Item) record {
	r := record{ID: it.ID, Content: it.Content, Timestamp: it.Timestamp}
	if it.SourceApp != "" {
		app := it.SourceApp
		r.SourceApp = &app
	}
	return r
}

func (r record) item() clipview.Item {
	it := clipview.Item{ID: r.ID, Content: r.Content, Timestamp: r.Timestamp}
	if r.SourceApp != nil {
		it.SourceApp = *r.SourceApp
	}
	return it
}

// decode reads items from r. Files written by older versions hold a single
// JSON array; those are detected by their first non-space byte.
func decode(r io.Reader) ([]clipview.Item, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if first == '[' {
		return decodeArray(br)
	}
	return decodeLines(br)
}

func decodeLines(r io.Reader) ([]clipview.Item, error) {
	var items []clipview.Item
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		items = append(items, rec.item())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func decodeArray(r io.Reader) ([]clipview.Item, error) {
	var recs []record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode history array: %w", err)
	}
	items := make([]clipview.Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.item())
	}
	return items, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
