package icon

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Warn
	Play
	Search
	Folder
	Eye
)

var icons = map[Icon]*iconDef{
	Success: {emoji: "✅", nerd: "", plain: "+", kaomoji: "(ᵔᴥᵔ)", squares: "🟩"},
	Fail:    {emoji: "❌", nerd: "", plain: "x", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Warn:    {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(⊙_⊙)", squares: "🟨"},
	Play:    {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(☞ﾟヮﾟ)☞", squares: "🟦"},
	Search:  {emoji: "🔎", nerd: "", plain: "?", kaomoji: "(・・ ) ?", squares: "🟪"},
	Folder:  {emoji: "📁", nerd: "", plain: "#", kaomoji: "[¬º-°]¬", squares: "🟫"},
	Eye:     {emoji: "👁", nerd: "", plain: "*", kaomoji: "(⌐■_■)", squares: "⬜"},
}
