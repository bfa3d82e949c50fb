package catalogue

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Record is a dataset as returned by the search API. Fields are passed through untouched;
// display defaults are applied by the mapper.
type Record struct {
	ID            Text            `json:"id"`
	Title         Text            `json:"title"`
	Name          Text            `json:"name"`
	Description   Text            `json:"description"`
	Modified      Text            `json:"modified"`
	DownloadCount *json.Number    `json:"download_count,omitempty"`
	Organization  *Organization   `json:"organization,omitempty"`
	Tags          StringList      `json:"tags"`
	Sectors       StringList      `json:"sectors"`
	Formats       StringList      `json:"formats"`
	Geography     StringList      `json:"geography"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
}

// Organization publishing a dataset
type Organization struct {
	ID   Text `json:"id"`
	Name Text `json:"name"`
}

// Text is a string that also accepts JSON numbers, booleans and null
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// StringList accepts either a JSON array of scalars or a single scalar value
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if b[0] != '[' {
		s, err := scalarText(b)
		if err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		s, err := scalarText(item)
		if err != nil {
			return err
		}
		if s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func scalarText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		err := json.Unmarshal(b, &s)
		return s, err
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil
	case '{':
		// objects such as {"name": "..."} carry their label in a name field
		var named struct {
			Name Text `json:"name"`
		}
		err := json.Unmarshal(b, &named)
		return string(named.Name), err
	default:
		var n json.Number
		err := json.Unmarshal(b, &n)
		return n.String(), err
	}
}
