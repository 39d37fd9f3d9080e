package handler

import (
	"bufio"
	"math/rand"
	"os"
	"strings"

	"crabigator/internal/chat"
)

// defaultSayings season otherwise empty embed descriptions.
var defaultSayings = []string{
	"The Crabigator sees all. Especially your review pile.",
	"One does not simply forget a burned item.",
	"Vacation mode is for the weak.",
	"Mnemonics are the Crabigator's love language.",
	"Your apprentice items miss you.",
	"鰐 + 蟹 = ❤",
}

// LoadSayings replaces the default sayings with lines from a file. The
// defaults stay in place when the file is missing or empty.
func (h *Handler) LoadSayings(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var sayings []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			sayings = append(sayings, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(sayings) > 0 {
		h.sayings = sayings
	}
	return nil
}

// sendEmbed fills in a random saying when the embed has no description,
// and a footer pointing at the bot, before handing it to the gateway.
func (h *Handler) sendEmbed(chatID int64, embed chat.Embed) error {
	if embed.Description == "" && len(h.sayings) > 0 {
		embed.Description = "_" + h.sayings[rand.Intn(len(h.sayings))] + "_"
	}
	if embed.Footer == "" {
		embed.Footer = "Powered by " + h.gateway.BotName() + ". Now get back to your reviews!"
	}
	return h.gateway.SendEmbed(chatID, embed)
}
