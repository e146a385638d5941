// ABOUTME: Install Claude Code skill for fittrack
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the fittrack skill for Claude Code.

This copies the skill definition to ~/.claude/skills/fittrack/
so Claude Code can use fittrack commands contextually.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(home, cmd.InOrStdin(), skillSkipConfirm)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "fittrack", "SKILL.md")
}

func installSkill(home string, in io.Reader, skipConfirm bool) error {
	path := skillPath(home)

	fmt.Println("This will install the fittrack skill, enabling Claude Code to:")
	fmt.Println()
	fmt.Println("  • Show today's workout and the 30-day plan")
	fmt.Println("  • Mark plan days complete and track your streak")
	fmt.Println("  • Update your fitness profile")
	fmt.Println("  • Summarize sleep, hydration, diet and health documents")
	fmt.Println()
	fmt.Println("Destination:")
	fmt.Printf("  %s\n", path)
	fmt.Println()

	if _, err := os.Stat(path); err == nil {
		fmt.Println("Note: A skill file already exists and will be overwritten.")
		fmt.Println()
	}

	if !skipConfirm {
		fmt.Print("Install the fittrack skill? [y/N] ")
		response, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && response == "" {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Installation canceled.")
			return nil
		}
		fmt.Println()
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.Green("✓ Installed fittrack skill successfully!")
	fmt.Println("Try asking Claude: \"What's my workout today?\" or \"Mark day 3 done\"")
	return nil
}
