package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetworkController is a thin JSON HTTP client. Callers own interpretation of
// the status code; only transport failures come back as errors.
type NetworkController struct {
	BaseUrl string
	Client  *http.Client
}

func (network *NetworkController) httpClient() *http.Client {
	if network.Client != nil {
		return network.Client
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (network *NetworkController) Get(path string, headers *map[string]string) (*[]byte, *int, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s", network.BaseUrl, path), nil)
	if err != nil {
		return nil, nil, err
	}
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}
	return network.do(req)
}

func (network *NetworkController) Post(path string, headers *map[string]string, body any) (*[]byte, *int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s%s", network.BaseUrl, path), bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}
	return network.do(req)
}

func (network *NetworkController) do(req *http.Request) (*[]byte, *int, error) {
	res, err := network.httpClient().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()
	response, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, err
	}
	return &response, &res.StatusCode, nil
}
