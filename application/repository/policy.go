package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"clockedin.io/entities"
	"clockedin.io/infrastructure/cryptography"
	"clockedin.io/infrastructure/database/connection/datastore"
	"clockedin.io/infrastructure/database/repository/cache"
	mongo_repository "clockedin.io/infrastructure/database/repository/mongo"
	"clockedin.io/infrastructure/logger"
)

// The policy is operator-managed and hot-reloadable: every admission call
// reads through this repository, and the redis cache TTL bounds how stale a
// call can ever be after an edit.
const (
	policyDocumentID = "admission-policy"
	policyCacheKey   = "admission-policy-cache"
	policyCacheTTL   = 30 * time.Second
)

var policyOnce = sync.Once{}

var policyRepository PolicyRepository

type PolicyRepository struct {
	repo mongo_repository.MongoRepository[entities.AdmissionPolicy]
}

func PolicyRepo() *PolicyRepository {
	policyOnce.Do(func() {
		policyRepository = PolicyRepository{
			repo: mongo_repository.MongoRepository[entities.AdmissionPolicy]{Model: datastore.PolicyModel},
		}
	})
	return &policyRepository
}

// Load returns the current policy plus the decrypted rotating-code secret.
// The secret only ever exists in plaintext inside a request's lifetime.
func (r *PolicyRepository) Load(ctx context.Context) (*entities.AdmissionPolicy, string, error) {
	policy, err := r.fetch(ctx)
	if err != nil || policy == nil {
		return policy, "", err
	}

	secret := ""
	if policy.CodeSecretEncrypted != nil && *policy.CodeSecretEncrypted != "" {
		decrypted, err := cryptography.DecryptData(*policy.CodeSecretEncrypted, nil)
		if err != nil {
			logger.Error("could not decrypt rotating code secret", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			return nil, "", err
		}
		secret = string(decrypted)
	}
	return policy, secret, nil
}

// cachedPolicy exists because the entity hides the encrypted secret from its
// JSON form; the cache round-trip must carry it.
type cachedPolicy struct {
	Policy              entities.AdmissionPolicy `json:"policy"`
	CodeSecretEncrypted *string                  `json:"codeSecretEncrypted"`
}

func (r *PolicyRepository) fetch(ctx context.Context) (*entities.AdmissionPolicy, error) {
	if cached := cache.Cache.FindOne(policyCacheKey); cached != nil {
		var entry cachedPolicy
		if err := json.Unmarshal([]byte(*cached), &entry); err == nil {
			entry.Policy.CodeSecretEncrypted = entry.CodeSecretEncrypted
			return &entry.Policy, nil
		}
	}

	policy, err := r.repo.FindOneByID(ctx, policyDocumentID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, nil
	}

	entry := cachedPolicy{Policy: *policy, CodeSecretEncrypted: policy.CodeSecretEncrypted}
	if payload, err := json.Marshal(entry); err == nil {
		cache.Cache.CreateEntry(policyCacheKey, string(payload), policyCacheTTL)
	}
	return policy, nil
}

// Replace validates and persists a new policy, encrypting the secret at rest
// and invalidating the read cache so the change applies to the next call.
func (r *PolicyRepository) Replace(ctx context.Context, policy entities.AdmissionPolicy, plainSecret *string) (*entities.AdmissionPolicy, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if plainSecret != nil && *plainSecret != "" {
		encrypted, err := cryptography.EncryptData([]byte(*plainSecret), nil)
		if err != nil {
			return nil, err
		}
		policy.CodeSecretEncrypted = encrypted
	}

	policy.ID = policyDocumentID
	err := r.repo.UpsertByFilter(ctx, map[string]interface{}{"_id": policyDocumentID}, map[string]interface{}{
		"office":              policy.Office,
		"radiusMeters":        policy.RadiusMeters,
		"wifiAllowList":       policy.WifiAllowList,
		"codeSecretEncrypted": policy.CodeSecretEncrypted,
	})
	if err != nil {
		return nil, err
	}
	cache.Cache.DeleteOne(policyCacheKey)
	return &policy, nil
}
