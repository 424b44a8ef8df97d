package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{6, "Доброе утро"},
		{11, "Доброе утро"},
		{13, "Добрый день"},
		{19, "Добрый вечер"},
		{23, "Доброй ночи"},
		{3, "Доброй ночи"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Greeting(time.Date(2024, 1, 1, tt.hour, 0, 0, 0, time.UTC)), "hour %d", tt.hour)
	}
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "1234 56** **** 5678", MaskCardNumber("1234567812345678"))
	assert.Equal(t, "1234 56** **** 5678", MaskCardNumber("1234 5678 1234 5678"))
	assert.Equal(t, "*7197", MaskCardNumber("*7197"))
	assert.Equal(t, "*", MaskCardNumber(""))
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "**4312", MaskAccountNumber("40817810099910004312"))
}

func TestMaskPaymentSource(t *testing.T) {
	assert.Equal(t, "**4312", MaskPaymentSource("40817810099910004312"))
	assert.Equal(t, "1234 56** **** 5678", MaskPaymentSource("1234567812345678"))
	assert.Equal(t, "*7197", MaskPaymentSource("*7197"))
}

func TestLastDigits(t *testing.T) {
	assert.Equal(t, "5678", LastDigits("*12345678", 4))
	assert.Equal(t, "4321", LastDigits("*87654321", 4))
	assert.Equal(t, "12", LastDigits("*12", 4))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01.05.2021", FormatDate(time.Date(2021, 5, 1, 12, 30, 0, 0, time.UTC)))
}
