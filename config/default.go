// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/ghie29/avmango/color"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/icon"
	"github.com/ghie29/avmango/key"
	"github.com/ghie29/avmango/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// ReadOnly fields are informative and cannot be changed.
	ReadOnly bool
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	case time.Duration:
		return "duration"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	fixed := func(k string) {
		f := Default[k]
		f.ReadOnly = true
		Default[k] = f
	}

	register(key.DatabaseDriver, "pgx", "database/sql driver for the structured board.\nAvailable options are: pgx, sqlite")
	register(key.DatabaseDSN, "", "Connection string for the structured board database.\nLeave empty to run with bulk categories only")
	register(key.StructuredBoard, "korean", "Slug of the board row that holds the structured category")
	register(key.BulkBaseURL, "https://avdbapi.com/api.php/provide/vod", "Base URL of the bulk catalog API")
	register(key.BulkPageSize, constant.BulkSourcePageSize, "Native page size of the bulk catalog API.\nUsed only when a response does not report its own limit")
	register(key.BulkPageDelay, constant.BulkPageDelay, "Pause between pages when walking a whole bulk listing")
	register(key.BulkTimeout, 30*time.Second, "Timeout for a single bulk catalog request")
	register(key.PagerUIPageSize, constant.UIPageSize, "Videos shown per listing page. Fixed")
	fixed(key.PagerUIPageSize)
	register(key.PlaybackRelatedLimit, constant.RelatedMin, "Number of related videos shown on the playback view. From 8 to 12")
	register(key.HomeLimit, constant.HomeLimit, "Number of latest structured videos shown on the home view")
	register(key.ServerAddr, ":8080", "Listen address of the HTTP server")
	register(key.ServerViewTTL, 10*time.Minute, "Idle time after which a category view session is discarded")
	register(key.ServerMaxViews, constant.MaxViews, "Most category view sessions kept at once.\nThe least recently used one is dropped to make room")
	register(key.SearchShowQuerySuggestions, true, "Remember search terms and offer suggestions")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: "+strings.Join(icon.AvailableVariants(), ", "))
	register(key.Player, "mpv", "Media player used for direct and HLS streams.\nEmbed links always open in the browser")
	register(key.LogsWrite, false, "Write logs to a file instead of stderr")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))

// Parse converts raw command-line values into the field's type.
func (f *Field) Parse(raw []string) (any, error) {
	if f.ReadOnly {
		return nil, fmt.Errorf("%s is read-only", f.Key)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no value for %s", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return b, nil
	case time.Duration:
		d, err := time.ParseDuration(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid duration value: %s", raw[0])
		}
		return d, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", f.typeName())
	}
}
