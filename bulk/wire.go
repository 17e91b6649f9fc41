package bulk

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// booleans and objects are not meaningful here
		*f = ""
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}

	str := strings.TrimSpace(string(s))
	if str == "" {
		*f = 0
		return nil
	}

	if n, err := strconv.Atoi(str); err == nil {
		*f = flexInt(n)
		return nil
	}

	fl, err := strconv.ParseFloat(str, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(fl)
	return nil
}

// flexStrings accepts a list of strings, a single string or a comma separated string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}

	if data[0] == '[' {
		var raw []flexString
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, r := range raw {
			if s := strings.TrimSpace(string(r)); s != "" {
				out = append(out, s)
			}
		}
		*f = out
		return nil
	}

	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}

	var out []string
	for _, part := range strings.Split(string(s), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*f = out
	return nil
}

// envelope is the listing response. Some endpoints answer with a bare item instead.
type envelope struct {
	Code      flexInt         `json:"code"`
	Msg       string          `json:"msg"`
	Page      flexInt         `json:"page"`
	PageCount flexInt         `json:"pagecount"`
	Limit     flexInt         `json:"limit"`
	Total     flexInt         `json:"total"`
	List      json.RawMessage `json:"list"`
	ID        flexString      `json:"id"`
}

type server struct {
	Slug      flexString `json:"slug"`
	Name      flexString `json:"name"`
	LinkEmbed flexString `json:"link_embed"`
	LinkM3U8  flexString `json:"link_m3u8"`
}

type episodes struct {
	ServerName flexString        `json:"server_name"`
	ServerData map[string]server `json:"-"`
	order      []string
}

func (e *episodes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	// a list of server groups: keep the first one
	if data[0] == '[' {
		var groups []episodes
		if err := json.Unmarshal(data, &groups); err != nil {
			return err
		}
		if len(groups) > 0 {
			*e = groups[0]
		}
		return nil
	}

	var raw struct {
		ServerName flexString      `json:"server_name"`
		ServerData json.RawMessage `json:"server_data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.ServerName = raw.ServerName
	e.ServerData = make(map[string]server)

	sd := bytes.TrimSpace(raw.ServerData)
	switch {
	case len(sd) == 0 || bytes.Equal(sd, []byte("null")):
	case sd[0] == '[':
		var list []server
		if err := json.Unmarshal(sd, &list); err != nil {
			return err
		}
		for i, s := range list {
			name := string(s.Name)
			if name == "" {
				name = strconv.Itoa(i)
			}
			e.ServerData[name] = s
			e.order = append(e.order, name)
		}
	default:
		if err := json.Unmarshal(sd, &e.ServerData); err != nil {
			return err
		}
		e.order = objectKeys(sd)
	}

	return nil
}

// primary is the "Full" server when present, else the first listed.
func (e *episodes) primary() (server, bool) {
	if s, ok := e.ServerData["Full"]; ok {
		return s, true
	}
	for _, name := range e.order {
		if s, ok := e.ServerData[name]; ok {
			return s, true
		}
	}
	return server{}, false
}

// objectKeys lists the keys of a JSON object in document order.
func objectKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		k, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, k)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

// item is one raw catalog entry.
type item struct {
	ID          flexString  `json:"id"`
	Name        flexString  `json:"name"`
	Title       flexString  `json:"title"`
	Slug        flexString  `json:"slug"`
	OriginName  flexString  `json:"origin_name"`
	PosterURL   flexString  `json:"poster_url"`
	ThumbURL    flexString  `json:"thumb_url"`
	Description flexString  `json:"description"`
	Content     flexString  `json:"content"`
	VodPlay     flexString  `json:"vod_play"`
	VodHits     flexString  `json:"vod_hits"`
	MovieCode   flexString  `json:"movie_code"`
	Actor       flexStrings `json:"actor"`
	Director    flexStrings `json:"director"`
	Category    flexStrings `json:"category"`
	Country     flexStrings `json:"country"`
	Year        flexString  `json:"year"`
	Quality     flexString  `json:"quality"`
	Status      flexString  `json:"status"`
	VideoURL    flexString  `json:"video_url"`
	VodPlayURL  flexString  `json:"vod_play_url"`
	Episodes    episodes    `json:"episodes"`
}
