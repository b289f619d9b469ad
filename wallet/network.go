package wallet

// NetworkConfig defines the network parameters the wallet needs for
// address encoding and BIP32 derivation.
type NetworkConfig struct {
	Name           string `json:"name"`
	AddressVersion byte   `json:"address_version"`
	P2SHVersion    byte   `json:"p2sh_version"`
}

// Predefined network configurations.
var (
	MainNet = NetworkConfig{
		Name:           "mainnet",
		AddressVersion: 0x00,
		P2SHVersion:    0x05,
	}

	TestNet = NetworkConfig{
		Name:           "testnet",
		AddressVersion: 0x6f,
		P2SHVersion:    0xc4,
	}
)

// NetworkByName returns the predefined network with the given name, or
// MainNet if the name is not recognized.
func NetworkByName(name string) *NetworkConfig {
	switch name {
	case "testnet":
		return &TestNet
	default:
		return &MainNet
	}
}
