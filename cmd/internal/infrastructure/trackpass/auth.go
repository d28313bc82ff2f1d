package trackpass

import (
	"context"
	"net/http"
	"trackpass/cmd/internal/utils/apierror"
)

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"senha"`
}

type LoginResult struct {
	Token string
	Role  string
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	f, ok, err := c.send(ctx, http.MethodPost, "/auth/login", nil, &creds)
	if err != nil {
		return nil, err
	}

	var res LoginResult
	if ok {
		f.setString(&res.Token, "token", "accessToken", "access_token")
		f.setUpper(&res.Role, "role", "cargo", "perfil")
	}

	if res.Token == "" {
		return nil, &apierror.RemoteError{
			Kind:    apierror.KindServer,
			Status:  http.StatusOK,
			Message: "login answered without a token",
			Op:      http.MethodPost + " /auth/login",
		}
	}
	return &res, nil
}
