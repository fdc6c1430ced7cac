// Copyright 2018 The uwutoken Authors
// This file is part of the uwutoken library.
//
// The uwutoken library is free software: you can redistribute it and/or modify
// it under the terms of the MIT Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The uwutoken library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// MIT Lesser General Public License for more details.
//
// You should have received a copy of the MIT Lesser General Public License
// along with the uwutoken library. If not, see <https://mit-license.org/>.

package sub

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"uwutoken"
	"uwutoken/common"
	"uwutoken/nre"
	"uwutoken/registry"
	"uwutoken/scripts"
	"uwutoken/storage/badger"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	transferAmount string
	transferMaxFee string
	deployCmd      = &cobra.Command{
		Use:                   "deploy [options]",
		DisableFlagsInUseLine: true,
		Short:                 "Deploy the token and mint the supply to account a",
		RunE:                  runDeploy,
	}
	transferCmd = &cobra.Command{
		Use:                   "transfer [options]",
		DisableFlagsInUseLine: true,
		Short:                 "Transfer tokens from account a to account b",
		RunE:                  runTransfer,
	}
	balanceCmd = &cobra.Command{
		Use:                   "balance [options] <alias|address>",
		DisableFlagsInUseLine: true,
		Short:                 "Print the token balance of an account",
		RunE:                  runBalance,
	}
	aliasesCmd = &cobra.Command{
		Use:                   "aliases [options]",
		DisableFlagsInUseLine: true,
		Short:                 "List the registered aliases of the current network",
		RunE:                  runAliases,
	}
)

// session bundles what a client command needs; close releases the registry.
type session struct {
	config clientConfig
	reg    registry.Registry
	rt     *nre.RPCRuntime
	close  func()
}

func openRegistry(config clientConfig) (registry.Registry, func(), error) {
	db, err := badger.New(config.storageParams.registryDir)
	if err != nil {
		return nil, nil, err
	}
	return registry.New(db, config.scripts.Network), func() { common.Safeclose(db.Close) }, nil
}

func newSession() (*session, error) {
	v, err := loadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	config, err := parseClientConfig(v, rpchost)
	if err != nil {
		return nil, err
	}
	if err = setupLogger(config.loggerParams); err != nil {
		return nil, err
	}
	reg, closer, err := openRegistry(config)
	if err != nil {
		return nil, err
	}
	cli := uwutoken.NewClient(config.rpcClientApiHost, config.rpcClientApiTimeOut)
	return &session{
		config: config,
		reg:    reg,
		rt:     nre.New(cli, reg, logrus.StandardLogger()),
		close:  closer,
	}, nil
}

// cmdContext is cancelled on SIGINT or SIGTERM.
func cmdContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()
	return ctx, cancel
}

func dumpTx(w io.Writer, tx *nre.TxInfo) {
	if debug && tx != nil {
		spew.Fdump(w, tx)
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	ctx, cancel := cmdContext()
	defer cancel()
	res, err := scripts.Deploy(ctx, s.rt, s.config.scripts, cmd.OutOrStdout())
	if res != nil {
		dumpTx(cmd.ErrOrStderr(), res.Tx)
	}
	return err
}

func resetTransferConfig(cfg *scripts.Config) error {
	if transferAmount != "" {
		amount, err := common.ParseAmount(transferAmount)
		if err != nil {
			return err
		}
		cfg.TransferAmount = amount
	}
	if transferMaxFee != "" {
		fee, err := common.ParseUint(transferMaxFee)
		if err != nil {
			return err
		}
		cfg.MaxFee = fee
	}
	return nil
}

func runTransfer(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	if err = resetTransferConfig(s.config.scripts); err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()
	res, err := scripts.Transfer(ctx, s.rt, s.config.scripts, cmd.OutOrStdout())
	if res != nil {
		dumpTx(cmd.ErrOrStderr(), res.Tx)
	}
	return err
}

func runBalance(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()
	address := args[0]
	if !common.IsAddress(address) {
		entry, err := registry.ResolveKind(s.reg, address, registry.KindAccount)
		if err != nil {
			return err
		}
		address = entry.Address
	}
	ctx, cancel := cmdContext()
	defer cancel()
	bal, err := scripts.Balance(ctx, s.rt, s.config.scripts, address)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), bal)
	return nil
}

func printEntries(w io.Writer, entries []*registry.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ALIAS\tKIND\tADDRESS\tCONTRACT\tCREATED")
	for _, e := range entries {
		created := time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Alias, e.Kind, e.Address, e.Contract, created)
	}
	return tw.Flush()
}

func runAliases(cmd *cobra.Command, args []string) error {
	v, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	config, err := parseClientConfig(v, "")
	if err != nil {
		return err
	}
	reg, closer, err := openRegistry(config)
	if err != nil {
		return err
	}
	defer closer()
	entries, err := reg.List()
	if err != nil {
		return err
	}
	return printEntries(cmd.OutOrStdout(), entries)
}

func init() {
	tFlags := transferCmd.Flags()
	tFlags.StringVarP(&transferAmount, "amount", "a", "", "Amount of tokens to transfer")
	tFlags.StringVarP(&transferMaxFee, "maxfee", "", "", "Max fee of the transfer transaction")
}
