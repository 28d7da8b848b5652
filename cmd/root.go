// Package cmd implements the command-line interface for storyline-cli.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/color"
	"github.com/storyline-cli/storyline/constant"
	"github.com/storyline-cli/storyline/icon"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/log"
	"github.com/storyline-cli/storyline/style"
	"github.com/storyline-cli/storyline/tui"
	"github.com/storyline-cli/storyline/util"
	"github.com/storyline-cli/storyline/version"
	"github.com/storyline-cli/storyline/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("server", "s", "", "Override the stories service base URL")
	lo.Must0(viper.BindPFlag(key.ServerURL, rootCmd.PersistentFlags().Lookup("server")))

	rootCmd.Flags().StringP("owner", "O", "", "Show only stories whose owner name matches the given filter")
	lo.Must0(viper.BindPFlag(key.FeedDefaultOwner, rootCmd.Flags().Lookup("owner")))

	rootCmd.Flags().Bool("include-viewed", false, "Keep already viewed stories in the feed list")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the storyline-cli application.
var rootCmd = &cobra.Command{
	Use:   constant.Storyline,
	Short: "A minimalist command-line interface for browsing and watching ephemeral stories",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A minimalist command-line interface for browsing and watching ephemeral stories"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		if cmd.Flags().Changed("include-viewed") {
			viper.Set(key.FeedHideViewed, !lo.Must(cmd.Flags().GetBool("include-viewed")))
		}

		options := tui.Options{
			Owner: viper.GetString(key.FeedDefaultOwner),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
