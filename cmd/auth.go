// Package cmd implements the command-line interface for storyline-cli.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/auth"
	"github.com/storyline-cli/storyline/constant"
	"github.com/storyline-cli/storyline/icon"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/log"
	"github.com/storyline-cli/storyline/network"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().StringP("username", "u", "", "The username or email to authenticate as")
}

// authCmd manages the session credentials for the stories service.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the session credentials for the stories service",
}

// loginResponse mirrors the token payload returned by the stories service.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// authLoginCmd authenticates against the stories service and stores the session token in the system keyring.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the stories service and store the session token",
	Run: func(cmd *cobra.Command, args []string) {
		username := lo.Must(cmd.Flags().GetString("username"))

		if username == "" {
			input := survey.Input{
				Message: "Username or email:",
			}
			handleErr(survey.AskOne(&input, &username, survey.WithValidator(survey.Required)))
		}

		var password string
		prompt := survey.Password{
			Message: "Password:",
		}
		handleErr(survey.AskOne(&prompt, &password, survey.WithValidator(survey.Required)))

		token, err := login(username, password)
		handleErr(err)

		handleErr(auth.SetToken(token))
		log.Infof("authenticated as %s", username)
		fmt.Printf("%s logged in as %s\n", icon.Get(icon.Success), username)
	},
}

// authLogoutCmd discards the stored session token.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s logged out\n", icon.Get(icon.Success))
	},
}

// authStatusCmd reports whether a session token is currently stored.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether a session token is currently stored",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := auth.Token(); err != nil {
			fmt.Printf("%s not logged in\n", icon.Get(icon.Fail))
			return
		}

		fmt.Printf("%s logged in\n", icon.Get(icon.Success))
	},
}

// login exchanges the given credentials for a session token.
func login(username, password string) (string, error) {
	payload := lo.Must(json.Marshal(map[string]string{
		"username": username,
		"password": password,
	}))

	endpoint := strings.TrimRight(viper.GetString(key.ServerURL), "/") + "/auth/login"
	request, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", constant.UserAgent)

	response, err := network.Client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: %s", response.Status)
	}

	var tokens loginResponse
	if err := json.NewDecoder(response.Body).Decode(&tokens); err != nil {
		return "", err
	}

	if tokens.AccessToken == "" {
		return "", fmt.Errorf("login response contained no access token")
	}

	return tokens.AccessToken, nil
}
