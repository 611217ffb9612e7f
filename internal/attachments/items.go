package attachments

import (
	"encoding/json"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"

	"healthoffice_backend/internal/models"
)

var (
	itemFieldRe = regexp.MustCompile(`^items\[(\d+)\]\[(text|url)\]$`)
	itemFileRe  = regexp.MustCompile(`^items\[(\d+)\]\[file\]$`)
)

// BuildItems assembles disclosure items from a multipart form. Two
// encodings are accepted:
//
//  1. a structured "items" value holding a JSON array of {text,url};
//  2. index-addressed flat fields items[<i>][text] / items[<i>][url].
//
// File parts named items[<i>][file] are stored and override that item's
// url. Items without non-empty text are dropped (text is mandatory);
// field names that match neither encoding are ignored.
func (b *Binder) BuildItems(form *multipart.Form, kind string) ([]models.ItaItem, error) {
	byIndex := make(map[int]*models.ItaItem)

	if structured, ok := form.Value["items"]; ok && len(structured) > 0 {
		var parsed []models.ItaItem
		if err := json.Unmarshal([]byte(structured[0]), &parsed); err == nil {
			for i := range parsed {
				item := parsed[i]
				byIndex[i] = &item
			}
		}
	} else {
		for key, values := range form.Value {
			m := itemFieldRe.FindStringSubmatch(key)
			if m == nil || len(values) == 0 {
				continue
			}
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			item := byIndex[idx]
			if item == nil {
				item = &models.ItaItem{}
				byIndex[idx] = item
			}
			if m[2] == "text" {
				item.Text = values[0]
			} else {
				item.URL = values[0]
			}
		}
	}

	for key, files := range form.File {
		m := itemFileRe.FindStringSubmatch(key)
		if m == nil || len(files) == 0 {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		path, err := b.store.Save(kind, files[0])
		if err != nil {
			return nil, err
		}
		item := byIndex[idx]
		if item == nil {
			item = &models.ItaItem{}
			byIndex[idx] = item
		}
		item.URL = path
	}

	indices := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	items := make([]models.ItaItem, 0, len(indices))
	for _, idx := range indices {
		if byIndex[idx].Text == "" {
			continue
		}
		items = append(items, *byIndex[idx])
	}
	return items, nil
}
