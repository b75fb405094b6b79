package main

// Sections shared by every help screen. Subcommands, local flags and global
// flags are listed only when the command has them.
const (
	usageCommands = `{{if .HasAvailableSubCommands}}
Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}  {{rpad .Name .NamePadding }} {{.Short}}
{{end}}{{end}}{{end}}`

	usageExamples = `{{if .HasExample}}
Examples:
{{.Example}}
{{end}}`

	usageFlags = `{{if .HasAvailableLocalFlags}}
Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}{{if .HasAvailableInheritedFlags}}
Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}`

	usageFooter = `{{if .HasAvailableSubCommands}}
Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`
)

// rootUsageTemplate leads with the bare-question form, which runs ask.
const rootUsageTemplate = `Usage:
  vaani "<question>" [--lang CODE] [flags]
  {{.CommandPath}} [command]
` + usageExamples + usageCommands + usageFlags + usageFooter

// groupUsageTemplate is for commands that only group subcommands (env, config).
const groupUsageTemplate = `Usage:
  {{.CommandPath}} [command]
` + usageCommands + usageFlags + usageFooter

const subcommandUsageTemplate = `Usage:
  {{.UseLine}}
` + usageExamples + usageFlags
