// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Structured Backend - these keys locate the relational database holding the structured board.
const (
	DatabaseDriver  = "database.driver"
	DatabaseDSN     = "database.dsn"
	StructuredBoard = "structured.board"
)

// Bulk Catalog - these keys tune the client for the third-party catalog API.
const (
	BulkBaseURL   = "bulk.base_url"
	BulkPageSize  = "bulk.page_size"
	BulkPageDelay = "bulk.page_delay"
	BulkTimeout   = "bulk.timeout"
)

// Listing and Playback - these keys shape the views built from both sources.
const (
	PagerUIPageSize      = "pager.ui_page_size"
	PlaybackRelatedLimit = "playback.related_limit"
	HomeLimit            = "home.limit"
)

// HTTP Surface - these keys configure the route server.
const (
	ServerAddr     = "server.addr"
	ServerViewTTL  = "server.view_ttl"
	ServerMaxViews = "server.max_views"
)

// Search Interaction - these keys define the behavior of query history.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Media Playback - these keys select the external handler for direct and HLS streams.
const (
	Player = "player.default"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern terminal output.
const (
	CliColored = "cli.colored"
)
