package tui

import (
	"testing"

	"github.com/matryer/is"
)

func TestToastHoldsOneMessageAtATime(t *testing.T) {
	is := is.New(t)

	toast := toastModel{}

	_ = toast.Show("first")
	is.Equal("first", toast.text)

	_ = toast.Show("second")
	is.Equal("second", toast.text)
}

func TestStaleExpiryDoesNotDismissANewerToast(t *testing.T) {
	is := is.New(t)

	toast := toastModel{}

	_ = toast.Show("first")
	firstGen := toast.gen

	_ = toast.Show("second")

	toast.Expire(toastTickMsg{gen: firstGen})
	is.Equal("second", toast.text)

	toast.Expire(toastTickMsg{gen: toast.gen})
	is.Equal("", toast.text)
}
