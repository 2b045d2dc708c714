package cli

import (
	"github.com/charmbracelet/lipgloss"

	"blogd/internal/config"
)

// Headline - High-emphasis text for section headers
var (
	headlineLarge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginTop(1)
)

// Title - Medium-emphasis text for titles and subtitles
var (
	titleMedium = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
)

// Body - Main content text
var (
	bodyLarge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	bodyMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
)

// Label - Small text for labels, captions, and supplementary content
var (
	labelLarge = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true).MarginTop(1)
)

// Semantic styles - mapped to Material typography scale
var (
	sectionHeader = headlineLarge.MarginBottom(1)
	hintText      = labelLarge

	commandName = titleMedium
	exampleCode = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))

	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
	description := bodyLarge.Render(config.AppDescription)

	return lipgloss.JoinVertical(lipgloss.Left, title, description)
}

// RenderHelp renders the usage screen
func RenderHelp() string {
	usageSection := sectionHeader.Render("Usage:")
	usage := lipgloss.JoinVertical(
		lipgloss.Left,
		bodyMedium.Render("  "+commandName.Render("blogd [serve]")+"                 Start the HTTP server"),
		bodyMedium.Render("  "+commandName.Render("blogd config")+"                  Print the effective configuration"),
		bodyMedium.Render("  "+commandName.Render("blogd version")+"                 Show version"),
		bodyMedium.Render("  "+commandName.Render("blogd help")+"                    Show help"),
	)

	optionsSection := sectionHeader.Render("Options:")
	options := lipgloss.JoinVertical(
		lipgloss.Left,
		bodyMedium.Render("  "+commandName.Render("-c, --config <FILE>")+"           Config file (yaml, toml or json)"),
		bodyMedium.Render("  "+commandName.Render("-v, --version")+"                 Show version"),
	)

	examplesSection := sectionHeader.Render("Examples:")
	examples := lipgloss.JoinVertical(
		lipgloss.Left,
		bodyMedium.Render("  "+exampleCode.Render("blogd")+"                         Serve with "+config.DefaultConfigFile+" when present"),
		bodyMedium.Render("  "+exampleCode.Render("blogd -c prod.yaml")+"            Serve with an explicit config file"),
		bodyMedium.Render("  "+exampleCode.Render("BLOGD_DATABASE_DRIVER=memory blogd")+"  Serve fixture posts from memory"),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		usageSection,
		usage,
		optionsSection,
		options,
		examplesSection,
		examples,
		hintText.Render("Environment variables use the "+config.EnvPrefix+"_ prefix, e.g. "+config.EnvPrefix+"_SERVER_ADDRESS"),
	) + "\n"
}
