package cryptography

import (
	"bytes"
	"testing"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("ENC_KEY", testKey)

	secret := []byte("JBSWY3DPEHPK3PXP")
	encrypted, err := EncryptData(secret, nil)
	if err != nil {
		t.Fatalf("EncryptData() error = %v", err)
	}
	if *encrypted == string(secret) {
		t.Fatal("ciphertext must differ from the plaintext")
	}

	decrypted, err := DecryptData(*encrypted, nil)
	if err != nil {
		t.Fatalf("DecryptData() error = %v", err)
	}
	if !bytes.Equal(decrypted, secret) {
		t.Errorf("round trip = %q, want %q", decrypted, secret)
	}
}

func TestEncryptProducesFreshCiphertext(t *testing.T) {
	t.Setenv("ENC_KEY", testKey)

	first, err := EncryptData([]byte("JBSWY3DPEHPK3PXP"), nil)
	if err != nil {
		t.Fatalf("EncryptData() error = %v", err)
	}
	second, err := EncryptData([]byte("JBSWY3DPEHPK3PXP"), nil)
	if err != nil {
		t.Fatalf("EncryptData() error = %v", err)
	}
	if *first == *second {
		t.Error("same plaintext must not encrypt to the same ciphertext twice")
	}
}

func TestDecryptRejectsBadInput(t *testing.T) {
	t.Setenv("ENC_KEY", testKey)

	if _, err := DecryptData("not-base64!!", nil); err == nil {
		t.Error("malformed base64 must be rejected")
	}
	if _, err := DecryptData("c2hvcnQ=", nil); err == nil {
		t.Error("ciphertext shorter than one block must be rejected")
	}
}
