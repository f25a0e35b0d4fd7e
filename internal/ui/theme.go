package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

type Theme struct {
	Header      lipgloss.Style
	Status      lipgloss.Style
	Tile        lipgloss.Style
	TileHidden  lipgloss.Style
	Answer      lipgloss.Style
	AnswerEmpty lipgloss.Style
	Accent      lipgloss.Style
	Pass        lipgloss.Style
	Fail        lipgloss.Style
	Pending     lipgloss.Style
	Muted       lipgloss.Style
	RedTeam     lipgloss.Style
	BlueTeam    lipgloss.Style

	Ink     color.Color
	Neutral color.Color
	Red     color.Color
	Blue    color.Color
	Bar     []color.Color
}

// Canvas is the full-screen style for a background classification.
func (t Theme) Canvas(bg Background) lipgloss.Style {
	c := t.Neutral
	switch bg {
	case BackgroundRed:
		c = t.Red
	case BackgroundBlue:
		c = t.Blue
	}
	return lipgloss.NewStyle().Background(c).Foreground(t.Ink)
}

func DefaultTheme() Theme {
	return ThemeForVariant("modern_arcade")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return cozyCleanTheme()
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return modernArcadeTheme()
	}
}

func modernArcadeTheme() Theme {
	neutral := lipgloss.Color("#2040C0")
	red := lipgloss.Color("#B3263A")
	blue := lipgloss.Color("#0E7CC9")
	tile := lipgloss.Color("#9999FF")
	answer := lipgloss.Color("#CCCCFF")
	text := lipgloss.Color("#333333")
	powder := lipgloss.Color("#EAF2FF")
	amber := lipgloss.Color("#FFC857")
	mint := lipgloss.Color("#67F0A8")
	brick := lipgloss.Color("#FF6F91")
	ink := lipgloss.Color("#0E1420")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Tile: lipgloss.NewStyle().
			Background(tile).
			Foreground(text).
			Bold(true),
		TileHidden: lipgloss.NewStyle().
			Background(lipgloss.Color("#5C6BC0")).
			Foreground(powder).
			Bold(true),
		Answer: lipgloss.NewStyle().
			Background(answer).
			Foreground(text).
			Bold(true),
		AnswerEmpty: lipgloss.NewStyle().
			Background(lipgloss.Color("#3050D0")),
		Accent:   lipgloss.NewStyle().Foreground(powder).Bold(true),
		Pass:     lipgloss.NewStyle().Foreground(mint).Bold(true),
		Fail:     lipgloss.NewStyle().Foreground(brick).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(amber).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B8C4E6")),
		RedTeam:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7A85")).Bold(true),
		BlueTeam: lipgloss.NewStyle().Foreground(lipgloss.Color("#5EEBFF")).Bold(true),
		Ink:      powder,
		Neutral:  neutral,
		Red:      red,
		Blue:     blue,
		Bar:      []color.Color{lipgloss.Color("#5EC2FF"), lipgloss.Color("#79E6A6"), amber},
	}
}

func cozyCleanTheme() Theme {
	honey := lipgloss.Color("#F2B872")
	sage := lipgloss.Color("#80C4A3")
	rose := lipgloss.Color("#D17A86")
	night := lipgloss.Color("#1E2430")
	paper := lipgloss.Color("#F4F6FA")
	sky := lipgloss.Color("#86B6F6")
	text := lipgloss.Color("#30394A")

	return Theme{
		Header:      lipgloss.NewStyle().Background(night).Foreground(paper).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(night).Foreground(paper).Padding(0, 1),
		Tile:        lipgloss.NewStyle().Background(lipgloss.Color("#B9C8F5")).Foreground(text).Bold(true),
		TileHidden:  lipgloss.NewStyle().Background(lipgloss.Color("#6D7FB8")).Foreground(paper).Bold(true),
		Answer:      lipgloss.NewStyle().Background(lipgloss.Color("#E4E9FB")).Foreground(text).Bold(true),
		AnswerEmpty: lipgloss.NewStyle().Background(lipgloss.Color("#4A5FA8")),
		Accent:      lipgloss.NewStyle().Foreground(sky).Bold(true),
		Pass:        lipgloss.NewStyle().Foreground(sage).Bold(true),
		Fail:        lipgloss.NewStyle().Foreground(rose).Bold(true),
		Pending:     lipgloss.NewStyle().Foreground(honey).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D6E6")),
		RedTeam:     lipgloss.NewStyle().Foreground(rose).Bold(true),
		BlueTeam:    lipgloss.NewStyle().Foreground(sky).Bold(true),
		Ink:         paper,
		Neutral:     lipgloss.Color("#3B4F9A"),
		Red:         lipgloss.Color("#9E4A55"),
		Blue:        lipgloss.Color("#3F7FB0"),
		Bar:         []color.Color{sky, sage, honey},
	}
}

func retroTerminalTheme() Theme {
	lime := lipgloss.Color("#9CF5A2")
	amber := lipgloss.Color("#E5D47A")
	red := lipgloss.Color("#FF6B6B")
	deep := lipgloss.Color("#07150A")
	forest := lipgloss.Color("#12301A")
	glow := lipgloss.Color("#C5F7C4")

	return Theme{
		Header:      lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Tile:        lipgloss.NewStyle().Background(lime).Foreground(deep).Bold(true),
		TileHidden:  lipgloss.NewStyle().Background(lipgloss.Color("#1F5C2F")).Foreground(glow).Bold(true),
		Answer:      lipgloss.NewStyle().Background(glow).Foreground(deep).Bold(true),
		AnswerEmpty: lipgloss.NewStyle().Background(lipgloss.Color("#173D22")),
		Accent:      lipgloss.NewStyle().Foreground(lime).Bold(true),
		Pass:        lipgloss.NewStyle().Foreground(lime).Bold(true),
		Fail:        lipgloss.NewStyle().Foreground(red).Bold(true),
		Pending:     lipgloss.NewStyle().Foreground(amber).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#73A17A")),
		RedTeam:     lipgloss.NewStyle().Foreground(red).Bold(true),
		BlueTeam:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD8FF")).Bold(true),
		Ink:         glow,
		Neutral:     forest,
		Red:         lipgloss.Color("#4A1414"),
		Blue:        lipgloss.Color("#10304A"),
		Bar:         []color.Color{lime, amber, red},
	}
}
