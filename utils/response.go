package utils

// APIResponse adalah format standar JSON yang diterima panel admin.
// Contoh sukses : { "status": true,  "message": "Template dibuat", "data": { ... } }
// Contoh gagal  : { "status": false, "message": "Validasi gagal", "errors": [ ... ] }
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"` // string, map, atau daftar error per-field
	Meta    *Pagination `json:"meta,omitempty"`
}

// BuildResponseSuccess digunakan saat request berhasil (HTTP 200/201).
func BuildResponseSuccess(message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

// BuildResponsePaged sama dengan BuildResponseSuccess ditambah metadata halaman.
func BuildResponsePaged(message string, data interface{}, meta Pagination) APIResponse {
	meta.Count = lenOf(data)
	if len(meta.PerPageOptions) == 0 {
		meta.PerPageOptions = defaultPerPageOptions
	}
	return APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
		Meta:    &meta,
	}
}

// BuildResponseFailed digunakan saat terjadi error (HTTP 4xx/5xx).
// - message: pesan utama untuk user.
// - err    : detail error (string, atau daftar error per-field untuk 422).
// - data   : data tambahan jika ada (biasanya nil).
func BuildResponseFailed(message string, err interface{}, data interface{}) APIResponse {
	return APIResponse{
		Status:  false,
		Message: message,
		Errors:  err,
		Data:    data,
	}
}
