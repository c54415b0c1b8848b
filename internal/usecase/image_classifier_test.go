package usecase

import (
	"testing"

	"github.com/drinkslane/backend/internal/domain"
)

func TestImageClassifier_Classify(t *testing.T) {
	c := NewImageClassifier()

	tests := []struct {
		name           string
		url            string
		wantOK         bool
		wantConfidence float64
		wantAction     string
	}{
		{
			name:           "missing url",
			url:            "   ",
			wantConfidence: 1.0,
			wantAction:     domain.ImageActionGenerate,
		},
		{
			name:           "denied domain",
			url:            "https://www.pinterest.com/pin/bottle-shot.jpg",
			wantConfidence: 0.9,
			wantAction:     domain.ImageActionGenerate,
		},
		{
			name:           "denied subdomain",
			url:            "https://i.instagram.com/p/tusker.png",
			wantConfidence: 0.9,
			wantAction:     domain.ImageActionGenerate,
		},
		{
			name:           "non-product keyword",
			url:            "https://cdn.example.org/uploads/logo-final.png",
			wantConfidence: 0.8,
			wantAction:     domain.ImageActionGenerate,
		},
		{
			name:           "wrong extension",
			url:            "https://cdn.example.org/products/gilbeys.svg",
			wantConfidence: 0.7,
			wantAction:     domain.ImageActionGenerate,
		},
		{
			name:           "clean product shot",
			url:            "https://cdn.example.org/products/johnnie-walker-black.jpg",
			wantOK:         true,
			wantConfidence: 0.6,
			wantAction:     domain.ImageActionUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.url, "Johnnie Walker", "Whisky")
			if got.IsAppropriate != tt.wantOK {
				t.Errorf("IsAppropriate = %v, want %v", got.IsAppropriate, tt.wantOK)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.SuggestedAction != tt.wantAction {
				t.Errorf("SuggestedAction = %q, want %q", got.SuggestedAction, tt.wantAction)
			}
		})
	}
}

func TestImageClassifier_RuleOrder(t *testing.T) {
	c := NewImageClassifier()

	// Hits the denied-domain, keyword, and extension rules at once; the
	// domain verdict must win because the chain is ordered.
	got := c.Classify("https://pinterest.com/x/selfie123.bmp", "Gin", "Gin")
	if got.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want the denied-domain verdict 0.9", got.Confidence)
	}
	if got.SuggestedAction != domain.ImageActionGenerate {
		t.Errorf("SuggestedAction = %q, want %q", got.SuggestedAction, domain.ImageActionGenerate)
	}
}

func TestImageClassifier_IsDenied(t *testing.T) {
	c := NewImageClassifier()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"clean product shot", "https://cdn.shop.co.ke/products/captain-morgan.jpg", false},
		{"empty url", "", true},
		{"denied host", "https://facebook.com/photos/bottle.jpg", true},
		{"denied host with www", "https://www.gravatar.com/avatar.png", true},
		{"lookalike host passes", "https://notfacebook.com/products/konyagi.jpg", false},
		{"no extension", "https://cdn.shop.co.ke/products/konyagi", true},
		{"keyword in path", "https://cdn.shop.co.ke/thumbnail/konyagi.jpg", true},
		{"generic filename", "https://cdn.shop.co.ke/products/image.jpg", true},
		{"camera-style short name", "https://cdn.shop.co.ke/products/img1234.png", true},
		{"mostly digits", "https://cdn.shop.co.ke/products/20240817-ab.jpg", true},
		{"four letters is enough", "https://cdn.shop.co.ke/products/beer.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsDenied(tt.url); got != tt.want {
				t.Errorf("IsDenied(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
