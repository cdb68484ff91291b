package handlers

import "net/http"

// Health - проверка живости для балансировщика.
func Health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Hello приветствует name из query; без параметра - "world".
// Пустое значение отдаётся как есть.
func Hello(w http.ResponseWriter, r *http.Request) {
	name := "world"
	if values, ok := r.URL.Query()["name"]; ok {
		name = values[0]
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "Hello, " + name + "!"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
