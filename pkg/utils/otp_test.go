package utils

import (
	"strconv"
	"testing"
)

func TestGenerateOTP_SixDigitsInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code length = %d, want 6", len(code))
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < otpMin || n > otpMax {
			t.Fatalf("code %d outside [%d, %d]", n, otpMin, otpMax)
		}
	}
}

func TestHashOTP(t *testing.T) {
	h1 := HashOTP("123456")
	if h1 != HashOTP("123456") {
		t.Error("HashOTP not deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if h1 == HashOTP("654321") {
		t.Error("different codes produced the same hash")
	}
}

func TestOTPEqual(t *testing.T) {
	stored := HashOTP("123456")
	if !OTPEqual("123456", stored) {
		t.Error("OTPEqual should match the correct code")
	}
	if OTPEqual("654321", stored) {
		t.Error("OTPEqual should reject a wrong code")
	}
	if OTPEqual("", "") {
		t.Error("OTPEqual should reject empty input")
	}
}
