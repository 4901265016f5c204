package utils

import "net/http"

var messageError map[int]string

func LoadMessageError() {
	messageError = make(map[int]string)
	messageError[http.StatusOK] = "Successfully"
	messageError[http.StatusForbidden] = "Something went wrong, your request has been rejected"
	messageError[http.StatusInternalServerError] = "Internal server error"
	messageError[http.StatusBadRequest] = "Something went wrong with your request"
	messageError[http.StatusUnauthorized] = "Unauthorized, permission denied"
	messageError[http.StatusNotFound] = "Record not found, please check your input"
	messageError[http.StatusCreated] = "Created successfully"
	messageError[http.StatusGatewayTimeout] = "Gateway time out"
	messageError[http.StatusConflict] = "Your input has been conflict with another data"
	messageError[http.StatusTooManyRequests] = "Too many request"
	messageError[http.StatusServiceUnavailable] = "Service temporarily unavailable"
}

func MessageError() map[int]string {
	if messageError == nil {
		LoadMessageError()
	}
	return messageError
}
