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

// Package devnet is a single-process development chain that executes the
// builtin token contract. It has no consensus, signing or real VM.
package devnet

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"uwutoken/common"
	"uwutoken/common/ahash"
	"uwutoken/lru"
	"uwutoken/storage/badger"

	"github.com/holiman/uint256"
)

const (
	TxTypeDeployAccount = "DEPLOY_ACCOUNT"
	TxTypeDeploy        = "DEPLOY"
	TxTypeInvoke        = "INVOKE_FUNCTION"

	StatusAcceptedOnL2 = "ACCEPTED_ON_L2"
	StatusRejected     = "REJECTED"
)

var (
	accountPre      = []byte("acct:")
	contractPre     = []byte("contract:")
	storagePre      = "storage:"
	txPre           = []byte("tx:")
	deployCounterKy = []byte("counter:deploy")
)

// addressMask keeps derived addresses below 2^251, inside the field.
var addressMask = new(uint256.Int).Sub(
	new(uint256.Int).Lsh(uint256.NewInt(1), 251), uint256.NewInt(1))

type AccountRecord struct {
	Address string `json:"address"`
	Salt    string `json:"salt"`
	Nonce   uint64 `json:"nonce"`
}

type ContractRecord struct {
	Address  string `json:"address"`
	Class    string `json:"class"`
	TxHash   string `json:"transaction_hash"`
	Deployed int64  `json:"deployed"`
}

type TxRecord struct {
	Hash               string   `json:"transaction_hash"`
	Type               string   `json:"type"`
	Status             string   `json:"status"`
	SenderAddress      string   `json:"sender_address,omitempty"`
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector,omitempty"`
	Calldata           []string `json:"calldata"`
	MaxFee             string   `json:"max_fee,omitempty"`
	Nonce              uint64   `json:"nonce"`
	Result             []string `json:"result,omitempty"`
	Error              string   `json:"error,omitempty"`
	Timestamp          int64    `json:"timestamp"`
}

// State holds accounts, contracts and transactions. All mutation goes
// through one mutex.
type State struct {
	mu        sync.Mutex
	db        badger.IStorage
	minFee    *uint256.Int
	contracts *lru.Cache
}

// contractCacheSize bounds the cache of contract records, which never
// change once deployed.
const contractCacheSize = 256

func NewState(db badger.IStorage, minFee *uint256.Int) *State {
	if minFee == nil {
		minFee = new(uint256.Int)
	}
	return &State{
		db:        db,
		minFee:    minFee.Clone(),
		contracts: lru.NewCache(contractCacheSize),
	}
}

func (s *State) MinFee() *uint256.Int {
	return s.minFee.Clone()
}

func deriveAddress(parts ...[]byte) *uint256.Int {
	v := new(uint256.Int).SetBytes(ahash.Keccak256(parts...))
	return v.And(v, addressMask)
}

func txHash(txType string, sender, to *uint256.Int, selector *uint256.Int, calldata []*uint256.Int, nonce uint64) string {
	parts := [][]byte{[]byte(txType)}
	for _, f := range []*uint256.Int{sender, to, selector} {
		b := f.Bytes32()
		parts = append(parts, b[:])
	}
	for _, f := range calldata {
		b := f.Bytes32()
		parts = append(parts, b[:])
	}
	var nb [8]byte
	binary.BigEndian.PutUint64(nb[:], nonce)
	parts = append(parts, nb[:])
	return common.FeltHex(deriveAddress(parts...))
}

func recordKey(pre []byte, address *uint256.Int) []byte {
	return append(append([]byte{}, pre...), common.AddressHex(address)...)
}

func (s *State) getJSON(key []byte, v interface{}) error {
	data, err := s.db.GetData(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func putJSON(batch *badger.StorageWriteBatch, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	batch.Put(key, data)
	return nil
}

func (s *State) account(address *uint256.Int) (*AccountRecord, error) {
	rec := &AccountRecord{}
	err := s.getJSON(recordKey(accountPre, address), rec)
	if errors.Is(err, badger.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, common.AddressHex(address))
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *State) contract(address *uint256.Int) (*ContractRecord, contractClass, error) {
	key := address.Bytes32()
	data, ok := s.contracts.Get(key)
	if !ok {
		var err error
		data, err = s.db.GetData(recordKey(contractPre, address))
		if errors.Is(err, badger.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownContract, common.AddressHex(address))
		}
		if err != nil {
			return nil, nil, err
		}
		s.contracts.Put(key, data)
	}
	rec := &ContractRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, nil, err
	}
	class, ok := builtinClasses[rec.Class]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownClass, rec.Class)
	}
	return rec, class, nil
}

// DeployAccount creates the account derived from salt. Deploying the same
// salt twice returns the existing account.
func (s *State) DeployAccount(salt string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address := deriveAddress([]byte("account:"), []byte(salt))
	hash := txHash(TxTypeDeployAccount, new(uint256.Int), address, new(uint256.Int), nil, 0)
	if _, err := s.account(address); err == nil {
		return common.AddressHex(address), hash, nil
	} else if !errors.Is(err, ErrUnknownAccount) {
		return "", "", err
	}
	batch := s.db.NewWriteBatch()
	if err := putJSON(batch, recordKey(accountPre, address), &AccountRecord{
		Address: common.AddressHex(address),
		Salt:    salt,
	}); err != nil {
		return "", "", err
	}
	if err := putJSON(batch, append(append([]byte{}, txPre...), hash...), &TxRecord{
		Hash:            hash,
		Type:            TxTypeDeployAccount,
		Status:          StatusAcceptedOnL2,
		ContractAddress: common.AddressHex(address),
		Calldata:        []string{},
		Timestamp:       time.Now().Unix(),
	}); err != nil {
		return "", "", err
	}
	if err := s.db.CommitWriteBatch(batch); err != nil {
		return "", "", err
	}
	return common.AddressHex(address), hash, nil
}

func (s *State) nextDeployIndex() (uint64, error) {
	data, err := s.db.GetData(deployCounterKy)
	if errors.Is(err, badger.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("corrupt deploy counter")
	}
	return binary.BigEndian.Uint64(data), nil
}

// DeployContract instantiates a builtin class and runs its constructor.
func (s *State) DeployContract(className string, calldata []*uint256.Int) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	class, ok := builtinClasses[className]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownClass, className)
	}
	index, err := s.nextDeployIndex()
	if err != nil {
		return "", "", err
	}
	var ib [8]byte
	binary.BigEndian.PutUint64(ib[:], index)
	address := deriveAddress([]byte("contract:"), []byte(className), ib[:])
	hash := txHash(TxTypeDeploy, new(uint256.Int), address, new(uint256.Int), calldata, index)

	store := newContractStore(s.db, address)
	ctx := &execContext{caller: new(uint256.Int), self: address, store: store}
	if err = class.Constructor(ctx, calldata); err != nil {
		return "", "", err
	}
	batch := s.db.NewWriteBatch()
	store.writeTo(batch)
	binary.BigEndian.PutUint64(ib[:], index+1)
	batch.Put(deployCounterKy, append([]byte{}, ib[:]...))
	now := time.Now().Unix()
	if err = putJSON(batch, recordKey(contractPre, address), &ContractRecord{
		Address:  common.AddressHex(address),
		Class:    className,
		TxHash:   hash,
		Deployed: now,
	}); err != nil {
		return "", "", err
	}
	if err = putJSON(batch, append(append([]byte{}, txPre...), hash...), &TxRecord{
		Hash:            hash,
		Type:            TxTypeDeploy,
		Status:          StatusAcceptedOnL2,
		ContractAddress: common.AddressHex(address),
		Calldata:        common.FeltsToHex(calldata),
		Nonce:           index,
		Timestamp:       now,
	}); err != nil {
		return "", "", err
	}
	if err = s.db.CommitWriteBatch(batch); err != nil {
		return "", "", err
	}
	return common.AddressHex(address), hash, nil
}

// Call runs an entry point without committing its writes.
func (s *State) Call(address, selector *uint256.Int, calldata []*uint256.Int) ([]*uint256.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, class, err := s.contract(address)
	if err != nil {
		return nil, err
	}
	ep, ok := findEntryPoint(class, selector)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntryPoint, common.FeltHex(selector))
	}
	ctx := &execContext{caller: new(uint256.Int), self: address, store: newContractStore(s.db, address)}
	return ep.fn(ctx, calldata)
}

// Invoke executes an entry point on behalf of an account. A failing
// invoke is recorded as REJECTED and its writes are dropped.
func (s *State) Invoke(sender, address, selector *uint256.Int, calldata []*uint256.Int, maxFee *uint256.Int) (*TxRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.account(sender)
	if err != nil {
		return nil, err
	}
	if maxFee.Lt(s.minFee) {
		return nil, fmt.Errorf("%w: %s < %s", ErrFeeTooLow, maxFee.ToBig(), s.minFee.ToBig())
	}
	_, class, err := s.contract(address)
	if err != nil {
		return nil, err
	}
	ep, ok := findEntryPoint(class, selector)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntryPoint, common.FeltHex(selector))
	}
	rec := &TxRecord{
		Hash:               txHash(TxTypeInvoke, sender, address, selector, calldata, acct.Nonce),
		Type:               TxTypeInvoke,
		SenderAddress:      common.AddressHex(sender),
		ContractAddress:    common.AddressHex(address),
		EntryPointSelector: common.FeltHex(selector),
		Calldata:           common.FeltsToHex(calldata),
		MaxFee:             common.FeltHex(maxFee),
		Nonce:              acct.Nonce,
		Timestamp:          time.Now().Unix(),
	}
	store := newContractStore(s.db, address)
	result, execErr := ep.fn(&execContext{caller: sender, self: address, store: store}, calldata)

	batch := s.db.NewWriteBatch()
	if execErr != nil {
		rec.Status = StatusRejected
		rec.Error = execErr.Error()
	} else {
		rec.Status = StatusAcceptedOnL2
		rec.Result = common.FeltsToHex(result)
		store.writeTo(batch)
	}
	acct.Nonce++
	if err = putJSON(batch, recordKey(accountPre, sender), acct); err != nil {
		return nil, err
	}
	if err = putJSON(batch, append(append([]byte{}, txPre...), rec.Hash...), rec); err != nil {
		return nil, err
	}
	if err = s.db.CommitWriteBatch(batch); err != nil {
		return nil, err
	}
	if execErr != nil {
		return rec, execErr
	}
	return rec, nil
}

func (s *State) GetNonce(account *uint256.Int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.account(account)
	if err != nil {
		return 0, err
	}
	return acct.Nonce, nil
}

func (s *State) GetClass(address *uint256.Int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, _, err := s.contract(address)
	if err != nil {
		return "", err
	}
	return rec.Class, nil
}

func (s *State) GetTransaction(hash string) (*TxRecord, error) {
	h, err := common.FromHex(hash)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := &TxRecord{}
	err = s.getJSON(append(append([]byte{}, txPre...), common.FeltHex(h)...), rec)
	if errors.Is(err, badger.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTx, hash)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Accounts lists every deployed account.
func (s *State) Accounts() ([]*AccountRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*AccountRecord, 0)
	err := s.db.PrefixForeachData(accountPre, func(k []byte, v []byte) error {
		rec := &AccountRecord{}
		if err := json.Unmarshal(v, rec); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}
