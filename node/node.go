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

package node

import (
	"net"

	"uwutoken"
	"uwutoken/api"
	"uwutoken/devnet"
	"uwutoken/log"
	"uwutoken/storage/badger"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Node serves the devnet state over JSON-RPC.
type Node struct {
	config    *Config
	state     *devnet.State
	rpcServer *uwutoken.RPCServer
}

type Config struct {
	RPCConfig *uwutoken.RPCConfig
	MinFee    *uint256.Int
}

func New(config *Config, stateDb badger.IStorage) (*Node, error) {
	if config.RPCConfig == nil {
		config.RPCConfig = new(uwutoken.RPCConfig)
	}
	if config.RPCConfig.Logger == nil {
		config.RPCConfig.Logger = log.DefaultLogger()
	}
	n := &Node{
		config: config,
		state:  devnet.NewState(stateDb, config.MinFee),
	}
	n.rpcServer = uwutoken.NewRPCServer(config.RPCConfig)
	if err := n.registerAPIs(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) registerAPIs() error {
	handlers := map[string]interface{}{
		"Account":     &api.AccountAPIHandler{State: n.state},
		"Contract":    &api.ContractAPIHandler{State: n.state},
		"Transaction": &api.TransactionAPIHandler{State: n.state},
		"Node":        &api.NodeAPIHandler{State: n.state},
	}
	for name, handler := range handlers {
		if err := n.rpcServer.RegisterName(name, handler); err != nil {
			return err
		}
	}
	return nil
}

// Start serves in the background. The returned channel reports the
// server's exit error, if any.
func (n *Node) Start() <-chan error {
	errc := make(chan error, 1)
	go func() {
		if err := n.rpcServer.Start(); err != nil {
			logrus.Errorln(err)
			errc <- err
		}
		close(errc)
	}()
	return errc
}

func (n *Node) Stop() error {
	return n.rpcServer.Stop()
}

func (n *Node) Addr() net.Addr {
	return n.rpcServer.Addr()
}

func (n *Node) State() *devnet.State {
	return n.state
}

func (n *Node) RPCServer() *uwutoken.RPCServer {
	return n.rpcServer
}
