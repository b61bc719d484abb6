package interfaces

import (
	"net/http"
)

// ApplicationContext carries a parsed request payload plus identity data
// resolved by the middleware chain into controllers, keeping them independent
// of the transport framework.
type ApplicationContext[T interface{}] struct {
	Ctx      interface{}
	Body     *T
	Header   http.Header
	Keys     map[string]any
	DeviceID *string
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	value, ok := ac.GetContextData(key).(string)
	if !ok {
		return ""
	}
	return value
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	value := ac.Header.Get(key)
	return &value
}
