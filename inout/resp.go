package inout

type LoginRes struct {
	AccessToken string `json:"accessToken"`
}

type RefreshRes struct {
	AccessToken string `json:"accessToken"`
}
