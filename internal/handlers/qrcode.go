package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/skip2/go-qrcode"
)

// GET /scholarship_qrcode?link=...&size=...
// Encodes a scholarship application link as a PNG QR code.
func (h *Handler) ScholarshipQRCode(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	u, err := url.Parse(link)
	if link == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		writeError(w, http.StatusBadRequest, "link must be an http(s) URL")
		return
	}

	size := 256
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 64 || n > 1024 {
			writeError(w, http.StatusBadRequest, "size must be between 64 and 1024")
			return
		}
		size = n
	}

	png, err := qrcode.Encode(u.String(), qrcode.Medium, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
