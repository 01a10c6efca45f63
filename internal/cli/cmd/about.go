package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tiler/internal/domain/build"
)

var buildInfo build.Info

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	RunE:  runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
	rootCmd.Version = info.String()
}

func runAbout(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	t := a.Theme

	rows := []struct{ label, value string }{
		{"Version", buildInfo.Version},
		{"Commit", buildInfo.Commit},
		{"Built", buildInfo.BuildDate},
		{"Go", buildInfo.GoVersion},
		{"Repository", build.RepoURL()},
	}
	var sb strings.Builder
	sb.WriteString(t.PanelHeader.Render("tiler"))
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(t.Subtle.Render(fmt.Sprintf("%-11s", r.label)))
		sb.WriteString(t.Normal.Render(r.value))
	}
	fmt.Println(t.Panel.Render(sb.String()))
	return nil
}
