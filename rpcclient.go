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

package uwutoken

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultClientTimeout = 60 * time.Second

// Client speaks JSON-RPC 2.0 over HTTP POST to a node.
type Client struct {
	hostUrl string
	timeout time.Duration
	rc      *resty.Client
	nextId  int64
}

type jsonRPCReq struct {
	JsonRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type jsonRPCResp struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
	ID      *int            `json:"id"`
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &Client{
		hostUrl: url,
		timeout: timeout,
		rc:      resty.New().SetTimeout(timeout),
	}
}

func (cli *Client) HostUrl() string {
	return cli.hostUrl
}

// CallMethod executes a JSON-RPC call and decodes the result into out.
// Errors reported by the node come back as *RPCError.
func (cli *Client) CallMethod(ctx context.Context, methodname string, params interface{}, out interface{}) error {
	id := int(atomic.AddInt64(&cli.nextId, 1))
	req := &jsonRPCReq{
		JsonRPC: jsonrpcVersion,
		ID:      id,
		Method:  methodname,
		Params:  params,
	}
	// The result must be a pointer so that response json can unmarshal into it.
	var resp *jsonRPCResp = nil
	r, err := cli.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&resp).
		Post(cli.hostUrl)
	if err != nil {
		return err
	}
	if r.IsError() {
		return fmt.Errorf("%s: http status %d", methodname, r.StatusCode())
	}
	if resp == nil {
		return fmt.Errorf("%s: empty response", methodname)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if resp.ID != nil && *resp.ID != id {
		return fmt.Errorf("%s: response id %d does not match request id %d", methodname, *resp.ID, id)
	}
	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}
