package service

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Greeting picks a salutation for the hour of t.
func Greeting(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return "Доброе утро"
	case hour >= 12 && hour < 18:
		return "Добрый день"
	case hour >= 18 && hour < 23:
		return "Добрый вечер"
	default:
		return "Доброй ночи"
	}
}

// MaskCardNumber turns 1234567812345678 into "1234 56** **** 5678".
// Short or already masked numbers like "*7197" become "*7197".
func MaskCardNumber(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	if len(number) < 10 || strings.Contains(number, "*") {
		return "*" + LastDigits(number, 4)
	}
	return number[:4] + " " + number[4:6] + "** **** " + number[len(number)-4:]
}

// accountNumberLength is the length of a Russian bank account number.
const accountNumberLength = 20

// MaskPaymentSource masks an account number or a card number, whichever
// number looks like.
func MaskPaymentSource(number string) string {
	compact := strings.ReplaceAll(number, " ", "")
	if len(compact) == accountNumberLength && !strings.Contains(compact, "*") {
		return MaskAccountNumber(compact)
	}
	return MaskCardNumber(number)
}

// MaskAccountNumber turns 40817810099910004312 into "**4312".
func MaskAccountNumber(number string) string {
	return "**" + LastDigits(number, 4)
}

// LastDigits returns the last n runes of s without the mask characters.
func LastDigits(s string, n int) string {
	s = strings.TrimLeft(s, "*")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[len(runes)-n:])
}

func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
