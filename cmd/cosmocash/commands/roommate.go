package commands

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/cosmocash/internal/household"
)

var (
	roommateName   string
	roommateAvatar string
)

var roommateCmd = &cobra.Command{
	Use:   "roommate",
	Short: "Manage the roommates of the household",
}

var roommateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a roommate with a name and an avatar image",
	RunE: func(cmd *cobra.Command, args []string) error {
		avatar, err := avatarDataURI(roommateAvatar)
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.h.AddRoommate(roommateName, avatar)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", r.Name, r.ID)
		return nil
	},
}

var roommateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roommates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		printRoommates(cmd, s.h)
		return nil
	},
}

func init() {
	roommateAddCmd.Flags().StringVar(&roommateName, "name", "", "roommate name")
	roommateAddCmd.Flags().StringVar(&roommateAvatar, "avatar", "", "path to an avatar image")
	roommateAddCmd.MarkFlagRequired("name")
	roommateAddCmd.MarkFlagRequired("avatar")

	roommateCmd.AddCommand(roommateAddCmd, roommateListCmd)
	rootCmd.AddCommand(roommateCmd)
}

// avatarDataURI reads an image file into a data: URI.
func avatarDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("avatar %s is empty", path)
	}
	return fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(data), base64.StdEncoding.EncodeToString(data)), nil
}

func printRoommates(cmd *cobra.Command, h *household.Household) {
	current, _ := h.CurrentUser()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tID")
	for _, r := range h.Roommates() {
		marker := ""
		if r.ID == current.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", marker, r.Name, r.ID)
	}
	tw.Flush()
}
