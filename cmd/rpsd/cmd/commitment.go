package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rpschain/x/rps/types"
)

const flagHexSecret = "hex"

// CommitmentCmd computes player 1's commitment offline, so the secret never
// leaves the player's machine.
func CommitmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commitment [secret] [move] [address]",
		Short: "Compute the commitment for a secret, move (rock|paper|scissors) and player address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := []byte(args[0])
			if isHex, _ := cmd.Flags().GetBool(flagHexSecret); isHex {
				b, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
				if err != nil {
					return fmt.Errorf("decode hex secret: %w", err)
				}
				secret = b
			}
			move, err := types.ParseMove(args[1])
			if err != nil {
				return err
			}
			d, err := types.ComputeCommitment(secret, move, args[2])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.String())
			return nil
		},
	}
	cmd.Flags().Bool(flagHexSecret, false, "treat the secret argument as hex")
	return cmd
}
