package session

import (
	"context"
	"fmt"
	"time"

	"github.com/aerospike/aerospike-client-go/v6"
	"github.com/aerospike/aerospike-client-go/v6/types"
)

const (
	aerospikeSet = "sessions"
	binUserID    = "user_id"
	binEmail     = "email"
)

// AerospikeStore хранит сессию записью с TTL в set "sessions".
type AerospikeStore struct {
	client    *aerospike.Client
	namespace string
}

func NewAerospikeStore(host string, port int, namespace string) (*AerospikeStore, error) {
	policy := aerospike.NewClientPolicy()
	policy.Timeout = 10 * time.Second

	client, err := aerospike.NewClientWithPolicyAndHost(policy, aerospike.NewHost(host, port))
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к Aerospike: %w", err)
	}

	if !client.IsConnected() {
		client.Close()
		return nil, fmt.Errorf("не удалось установить подключение к Aerospike")
	}

	return &AerospikeStore{client: client, namespace: namespace}, nil
}

func (s *AerospikeStore) Save(ctx context.Context, id string, data Data, ttl time.Duration) error {
	key, err := aerospike.NewKey(s.namespace, aerospikeSet, id)
	if err != nil {
		return fmt.Errorf("ошибка создания ключа сессии: %w", err)
	}

	policy := aerospike.NewWritePolicy(0, expirationSeconds(ttl))
	bins := aerospike.BinMap{
		binUserID: data.UserID,
		binEmail:  data.Email,
	}
	if err := s.client.Put(policy, key, bins); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

func (s *AerospikeStore) Load(ctx context.Context, id string) (Data, error) {
	key, err := aerospike.NewKey(s.namespace, aerospikeSet, id)
	if err != nil {
		return Data{}, fmt.Errorf("ошибка создания ключа сессии: %w", err)
	}

	record, err := s.client.Get(nil, key, binUserID, binEmail)
	if err != nil {
		if err.Matches(types.KEY_NOT_FOUND_ERROR) {
			return Data{}, ErrNotFound
		}
		return Data{}, fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	data := Data{}
	switch v := record.Bins[binUserID].(type) {
	case int:
		data.UserID = int64(v)
	case int64:
		data.UserID = v
	}
	data.Email, _ = record.Bins[binEmail].(string)
	return data, nil
}

func (s *AerospikeStore) Close() error {
	s.client.Close()
	return nil
}

// expirationSeconds округляет TTL вверх до секунды: Aerospike хранит TTL в секундах.
func expirationSeconds(ttl time.Duration) uint32 {
	seconds := (ttl + time.Second - 1) / time.Second
	if seconds < 1 {
		seconds = 1
	}
	return uint32(seconds)
}
