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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go/token"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"uwutoken/common"
	"uwutoken/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	jsonrpcVersion = "2.0"
)

var (
	parseError          = NewRPCError(CodeParseError, "parse error")
	invalidRequestError = NewRPCError(CodeInvalidRequest, "invalid request")
	methodNotFoundError = NewRPCError(CodeMethodNotFound, "method not found")
	invalidParamsError  = NewRPCError(CodeInvalidParams, "invalid params")
)

type methodType struct {
	method    reflect.Method
	ArgType   reflect.Type
	ReplyType reflect.Type
}

type service struct {
	name    string
	rcvr    reflect.Value
	typ     reflect.Type
	methods map[string]*methodType
}

type jsonRPCObj struct {
	jsonrpc string
	id      *int
	method  string
	params  interface{}
}

type jsonRPCRespErr struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type RPCConfig struct {
	ListenAddr string
	Logger     log.Logger
}

// RPCServer dispatches "Service.Method" JSON-RPC calls to registered
// receivers. A method is exported when it has the shape
// func (r *T) Name(args A, reply *R) error.
type RPCServer struct {
	logger     log.Logger
	config     *RPCConfig
	ginEngine  *gin.Engine
	upgrader   websocket.Upgrader
	serviceMap map[string]*service

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

func ginlogger(log log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 {
			log.Errorln(c.Errors.ByType(gin.ErrorTypePrivate).String())
		}
	}
}

func NewRPCServer(config *RPCConfig) *RPCServer {
	server := &RPCServer{
		logger:     config.Logger,
		config:     config,
		serviceMap: make(map[string]*service),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if server.logger == nil {
		server.logger = log.DefaultLogger()
	}
	gin.SetMode(gin.ReleaseMode)
	server.ginEngine = gin.New()
	server.ginEngine.Use(ginlogger(server.logger))
	server.ginEngine.Use(gin.Recovery())
	server.ginEngine.Any("/", server.handle)
	return server
}

// decodeParams fills argv from either positional or named params.
func decodeParams(params interface{}, argv reflect.Value) error {
	switch p := params.(type) {
	case nil:
		return nil
	case []interface{}:
		target := reflect.Indirect(argv)
		if target.Kind() != reflect.Struct || len(p) != target.NumField() {
			return invalidParamsError
		}
		for i := range p {
			if err := common.Objcopy(p[i], target.Field(i).Addr().Interface()); err != nil {
				return NewRPCErrorCause(CodeInvalidParams, err)
			}
		}
		return nil
	case map[string]interface{}:
		if err := common.Objcopy(p, argv.Interface()); err != nil {
			return NewRPCErrorCause(CodeInvalidParams, err)
		}
		return nil
	default:
		return invalidParamsError
	}
}

func (s *service) callMethod(mtype *methodType, params interface{}) (interface{}, error) {
	function := mtype.method.Func
	argIsValue := mtype.ArgType.Kind() != reflect.Ptr
	var argv reflect.Value
	if argIsValue {
		argv = reflect.New(mtype.ArgType)
	} else {
		argv = reflect.New(mtype.ArgType.Elem())
	}
	if err := decodeParams(params, argv); err != nil {
		return nil, err
	}
	if argIsValue {
		argv = argv.Elem()
	}
	replyv := reflect.New(mtype.ReplyType.Elem())
	switch mtype.ReplyType.Elem().Kind() {
	case reflect.Map:
		replyv.Elem().Set(reflect.MakeMap(mtype.ReplyType.Elem()))
	case reflect.Slice:
		replyv.Elem().Set(reflect.MakeSlice(mtype.ReplyType.Elem(), 0, 0))
	}
	returnValues := function.Call([]reflect.Value{s.rcvr, argv, replyv})
	errInter := returnValues[0].Interface()
	if errInter != nil {
		return nil, errInter.(error)
	}
	return replyv.Interface(), nil
}

func (server *RPCServer) Register(rcvr interface{}) error {
	return server.register(rcvr, "", false)
}

func (server *RPCServer) RegisterName(name string, rcvr interface{}) error {
	return server.register(rcvr, name, true)
}

func isExportedOrBuiltinType(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	// PkgPath will be non-empty even for an exported type,
	// so we need to check the type name as well.
	return token.IsExported(t.Name()) || t.PkgPath() == ""
}

var typeOfError = reflect.TypeOf((*error)(nil)).Elem()

func suitableMethods(typ reflect.Type) map[string]*methodType {
	methods := make(map[string]*methodType)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		mtype := method.Type
		if method.PkgPath != "" {
			continue
		}
		if mtype.NumIn() != 3 {
			continue
		}
		argType := mtype.In(1)
		if !isExportedOrBuiltinType(argType) {
			continue
		}
		replyType := mtype.In(2)
		if replyType.Kind() != reflect.Ptr {
			continue
		}
		if mtype.NumOut() != 1 {
			continue
		}
		if returnType := mtype.Out(0); returnType != typeOfError {
			continue
		}
		methods[method.Name] = &methodType{
			method:    method,
			ArgType:   argType,
			ReplyType: replyType,
		}
	}
	return methods
}

func (server *RPCServer) register(rcvr interface{}, name string, useName bool) error {
	s := new(service)
	s.typ = reflect.TypeOf(rcvr)
	s.rcvr = reflect.ValueOf(rcvr)
	sname := reflect.Indirect(s.rcvr).Type().Name()
	if useName {
		sname = name
	}
	if sname == "" {
		return fmt.Errorf("rpc.Register: no service name for type %s", s.typ.String())
	}
	if !token.IsExported(sname) && !useName {
		return fmt.Errorf("rpc.Register: type %s is not exported", sname)
	}
	s.name = sname
	s.methods = suitableMethods(s.typ)
	if len(s.methods) == 0 {
		return fmt.Errorf("rpc.Register: type %s has no suitable methods", sname)
	}
	server.serviceMap[sname] = s
	return nil
}

// Methods lists every registered "Service.Method" name.
func (server *RPCServer) Methods() []string {
	names := make([]string, 0)
	for sname, s := range server.serviceMap {
		for mname := range s.methods {
			names = append(names, sname+"."+mname)
		}
	}
	return names
}

func (server *RPCServer) getServiceAndMethodType(pack string) (*service, *methodType, error) {
	mpake := strings.Split(pack, ".")
	if len(mpake) != 2 {
		return nil, nil, methodNotFoundError
	}
	mService := server.serviceMap[mpake[0]]
	if mService == nil {
		return nil, nil, methodNotFoundError
	}
	mtype := mService.methods[mpake[1]]
	if mtype == nil {
		return nil, nil, methodNotFoundError
	}
	return mService, mtype, nil
}

func (server *RPCServer) parseJsonRPCObj(jsonObjMap map[string]interface{}, obj *jsonRPCObj) error {
	idNumber, ok := jsonObjMap["id"].(json.Number)
	if !ok {
		return invalidRequestError
	}
	id, err := strconv.Atoi(idNumber.String())
	if err != nil {
		return NewRPCError(CodeInvalidRequest, err.Error())
	}
	obj.id = &id
	version, ok := jsonObjMap["jsonrpc"].(string)
	if !ok || version != jsonrpcVersion {
		return invalidRequestError
	}
	obj.jsonrpc = version
	methodPack, ok := jsonObjMap["method"].(string)
	if !ok {
		return invalidRequestError
	}
	obj.method = methodPack
	obj.params = jsonObjMap["params"]
	return nil
}

func (server *RPCServer) jsonRPCCall(data []byte, rpcId **int, w io.Writer) error {
	var reqObj interface{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&reqObj); err != nil {
		return parseError
	}
	jsonObjMap, ok := reqObj.(map[string]interface{})
	if !ok {
		return invalidRequestError
	}
	rpcObj := &jsonRPCObj{}
	err := server.parseJsonRPCObj(jsonObjMap, rpcObj)
	*rpcId = rpcObj.id
	if err != nil {
		return err
	}
	s, t, err := server.getServiceAndMethodType(rpcObj.method)
	if err != nil {
		return err
	}
	server.logger.Debugf("rpc call %s", rpcObj.method)
	rec, err := s.callMethod(t, rpcObj.params)
	if err != nil {
		return err
	}
	outMap := make(map[string]interface{})
	outMap["jsonrpc"] = jsonrpcVersion
	outMap["id"] = rpcObj.id
	outMap["result"] = rec
	outBytes, err := json.Marshal(outMap)
	if err != nil {
		return err
	}
	_, _ = w.Write(outBytes)
	return nil
}

func httperr(c *gin.Context, status int, err error) {
	c.String(status, "%s", err)
	c.Abort()
}

func writeRPCError(err error, reqId *int, w io.Writer) {
	var rpcErr *RPCError
	e := jsonRPCRespErr{}
	if errors.As(err, &rpcErr) {
		e.Code = rpcErr.Code
		e.Message = rpcErr.Message
	} else {
		e.Code = CodeInternalError
		e.Message = err.Error()
	}
	outMap := make(map[string]interface{})
	outMap["jsonrpc"] = jsonrpcVersion
	outMap["id"] = reqId
	outMap["error"] = e
	outBytes, _ := json.Marshal(outMap)
	_, _ = w.Write(outBytes)
}

func isWebsocketRequest(c *gin.Context) bool {
	connection := strings.ToLower(c.GetHeader("Connection"))
	upgrade := strings.ToLower(c.GetHeader("Upgrade"))
	return strings.Contains(connection, "upgrade") && upgrade == "websocket"
}

func (server *RPCServer) handleWebsocket(c *gin.Context) error {
	conn, err := server.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	for {
		t, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if t != websocket.TextMessage {
			continue
		}
		bs := bytes.NewBuffer(nil)
		var rpcId *int
		if err = server.jsonRPCCall(msg, &rpcId, bs); err != nil {
			bs.Reset()
			writeRPCError(err, rpcId, bs)
		}
		if err = conn.WriteMessage(t, bs.Bytes()); err != nil {
			break
		}
	}
	return nil
}

func (server *RPCServer) handle(c *gin.Context) {
	if isWebsocketRequest(c) {
		if err := server.handleWebsocket(c); err != nil {
			server.logger.Warnf("ws connect err: %s", err)
		}
		c.Abort()
		return
	}
	if c.Request.Method != http.MethodPost {
		httperr(c, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	if c.ContentType() != "application/json" {
		httperr(c, http.StatusUnsupportedMediaType, errors.New("not acceptable"))
		return
	}
	if c.Request.Body == nil {
		httperr(c, http.StatusBadRequest, errors.New("body not be empty"))
		return
	}
	body, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		httperr(c, http.StatusInternalServerError, fmt.Errorf("read body err: %s", err))
		return
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "application/json; charset=utf-8")
	out := bytes.NewBuffer(nil)
	var rpcId *int = nil
	if err = server.jsonRPCCall(body, &rpcId, out); err != nil {
		out.Reset()
		writeRPCError(err, rpcId, out)
	}
	_, _ = c.Writer.Write(out.Bytes())
	c.Abort()
}

// Handler exposes the router, e.g. for httptest.
func (server *RPCServer) Handler() http.Handler {
	return server.ginEngine
}

// Addr is the bound listen address once Start has been called.
func (server *RPCServer) Addr() net.Addr {
	server.mu.Lock()
	defer server.mu.Unlock()
	if server.listener == nil {
		return nil
	}
	return server.listener.Addr()
}

// Start listens on the configured address and serves until Stop.
func (server *RPCServer) Start() error {
	ln, err := net.Listen("tcp", server.config.ListenAddr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: server.ginEngine}
	server.mu.Lock()
	server.listener = ln
	server.httpServer = srv
	server.mu.Unlock()
	server.logger.Infof("RPC Service listen on: %s", ln.Addr())
	if err = srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (server *RPCServer) Stop() error {
	server.mu.Lock()
	defer server.mu.Unlock()
	if server.httpServer == nil {
		return nil
	}
	return server.httpServer.Close()
}
