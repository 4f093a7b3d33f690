package fakecredentialsrepo

import (
	"sync"

	"github.com/jrsteele09/go-taskassign/credentials"
)

var _ credentials.Repo = (*FakeCredentialsRepo)(nil)

// FakeCredentialsRepo is an in-memory credential store for tests, with
// optional fault injection per operation.
type FakeCredentialsRepo struct {
	token string
	lock  sync.Mutex

	StoreErr error
	GetErr   error
	ClearErr error

	StoreCalls int
	ClearCalls int
}

func NewFakeCredentialsRepo() *FakeCredentialsRepo {
	return &FakeCredentialsRepo{}
}

func (cr *FakeCredentialsRepo) Store(token string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	cr.StoreCalls++
	if cr.StoreErr != nil {
		return cr.StoreErr
	}
	cr.token = token
	return nil
}

func (cr *FakeCredentialsRepo) Get() (string, error) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.GetErr != nil {
		return "", cr.GetErr
	}
	return cr.token, nil
}

func (cr *FakeCredentialsRepo) Clear() error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	cr.ClearCalls++
	if cr.ClearErr != nil {
		return cr.ClearErr
	}
	cr.token = ""
	return nil
}
