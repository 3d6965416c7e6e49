package redis

const keyPrefix = "guessquiz"

func rosterKey() string {
	return keyPrefix + ":roster"
}
