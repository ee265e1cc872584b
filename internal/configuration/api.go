package configuration

type ApiConfig struct {
	Enabled bool `json:"enabled"`
	// Socket is the path of the unix socket the api listens on
	Socket string `json:"socket"`
}
