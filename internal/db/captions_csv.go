package db

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type captionRecord struct {
	Text    string
	MemeIDs IDList
}

// LoadCaptionsCSV reads text,meme_ids rows (ids separated by ';') and upserts
// them into the captions table. Every referenced meme must exist.
func LoadCaptionsCSV(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	records, err := readCaptions(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		var found int64
		if err := conn.Model(&Meme{}).Where("id IN ?", []uint(record.MemeIDs)).Count(&found).Error; err != nil {
			return inserted, err
		}
		if int(found) != len(record.MemeIDs) {
			return inserted, fmt.Errorf("caption %q references unknown memes %v", record.Text, record.MemeIDs)
		}
		entry := Caption{}
		if err := conn.Where("text = ?", record.Text).
			Attrs(Caption{Text: record.Text, MemeIDs: record.MemeIDs}).
			FirstOrCreate(&entry).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func readCaptions(path string) ([]captionRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []captionRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		text := strings.TrimSpace(row[0])
		if text == "" {
			continue
		}
		ids, err := parseIDs(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if len(ids) == 0 {
			continue
		}
		records = append(records, captionRecord{Text: text, MemeIDs: ids})
	}
	return records, nil
}

func parseIDs(raw string) (IDList, error) {
	var ids IDList
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseUint(part, 10, 64)
		if err != nil || value == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedIDList, part)
		}
		ids = append(ids, uint(value))
	}
	if err := ids.Validate(); err != nil {
		return nil, err
	}
	return ids, nil
}
