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
	"os"
	"os/signal"
	"syscall"

	"uwutoken"
	"uwutoken/common"
	"uwutoken/log"
	"uwutoken/node"
	"uwutoken/storage/badger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rpcaddr   string
	datadir   string
	minfee    string
	devnetCmd = &cobra.Command{
		Use:                   "devnet [options]",
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		Short:                 "Start a local development node",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevnet()
		},
	}
)

func resetDevnetConfig(config *devnetConfig) error {
	if datadir != "" {
		setupDataDir(&config.storageParams, datadir)
	}
	if rpcaddr != "" {
		config.listenAddr = rpcaddr
	}
	if minfee != "" {
		fee, err := common.ParseUint(minfee)
		if err != nil {
			return err
		}
		config.minFee = fee
	}
	return nil
}

func setupLogger(params loggerParams) error {
	if err := log.Setup(params.level); err != nil {
		return err
	}
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.Debugf("Set debug mode")
	}
	return nil
}

func runDevnet() error {
	v, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	config, err := parseDevnetConfig(v)
	if err != nil {
		return err
	}
	if err = resetDevnetConfig(&config); err != nil {
		return err
	}
	if err = setupLogger(config.loggerParams); err != nil {
		return err
	}
	stateDb, err := badger.New(config.storageParams.devnetDir)
	if err != nil {
		return err
	}
	defer common.Safeclose(stateDb.Close)

	nodeConf := &node.Config{MinFee: config.minFee}
	nodeConf.RPCConfig = &uwutoken.RPCConfig{
		ListenAddr: config.listenAddr,
		Logger:     logrus.StandardLogger(),
	}
	stack, err := node.New(nodeConf, stateDb)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"datadir": config.storageParams.devnetDir,
		"minfee":  config.minFee.ToBig().String(),
	}).Infof("Starting devnet")
	errc := stack.Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	select {
	case s := <-c:
		logrus.Infof("Got signal %s, shutting down", s)
	case err = <-errc:
		if err != nil {
			return err
		}
	}
	return stack.Stop()
}

func init() {
	mFlags := devnetCmd.PersistentFlags()
	mFlags.StringVarP(&rpcaddr, "rpcaddr", "r", "", "Set JSON-RPC Service listen address")
	mFlags.StringVarP(&datadir, "datadir", "d", "", "Set Data directory")
	mFlags.StringVarP(&minfee, "minfee", "", "", "Reject invokes whose max fee is below this value")
	rootCmd.AddCommand(devnetCmd)
}
