package handler

import (
	"fmt"

	"crabigator/internal/chat"
)

// Canned replies. The Crabigator speaks in character; handlers only ever
// interpolate the active prefix and ids.

func prefixUsageMessage(prefix string) string {
	return fmt.Sprintf("Don't treat the prefix like your Kanji and forget it! "+
		"Example usage: `%sprefix <CHAR>`", prefix)
}

const prefixNoSpacesMessage = "The Crabigator does not allow spaces in the prefix!"

func prefixChangedMessage(prefix string) string {
	return fmt.Sprintf("The Crabigator became more omnipotent by changing to `%s`!", prefix)
}

const prefixDeniedMessage = "Only server administrators may teach the Crabigator a new prefix."

const prefixPrivateMessage = "There is no server prefix to change here. " +
	"The Crabigator hears you just fine in private."

func addUserUsageMessage(prefix string) string {
	return fmt.Sprintf("Improper command usage. "+
		"Example usage: `%sadduser <WANIKANI_API_V2_TOKEN>`", prefix)
}

const tokenInvalidMessage = "API token is invalid! " +
	"Make sure there are no dangling characters on either side!"

const addUserNotPrivateMessage = "API tokens are secrets! " +
	"Send that command to the Crabigator in a private message instead."

func alreadyRegisteredMessage(prefix string) string {
	return fmt.Sprintf("The Crabigator is already watching you closely. "+
		"Use `%sremoveuser` first if you want a fresh start.", prefix)
}

// mention renders how the platform addresses the sender: by username
// when one is known, by id otherwise.
func mention(msg chat.Message) string {
	if msg.Username != "" {
		return "@" + msg.Username
	}
	return fmt.Sprintf("<@%d>", msg.UserID)
}

func watchingMessage(who string) string {
	return fmt.Sprintf("Crabigator has started watching %s closely...", who)
}

func farewellMessage(emoji string) string {
	return fmt.Sprintf("The Cult of the Crabigator didn't want you in the first place. %s", emoji)
}

const unknownPersonMessage = "Crabigator does not know this person. " +
	"I cannot delete what I do not know. "

func unknownUserMessage(prefix string) string {
	return fmt.Sprintf("Crabigator does not know this person. "+
		"Please use `%sadduser <WANIKANI_API_V2_TOKEN>` and try again.", prefix)
}

const ambiguousTargetMessage = "The Crabigator can only stalk one person at a time. " +
	"Mention someone or give a single numeric id."

const levelStatsStubMessage = "Compiling your data took forever, so I took a nap instead. " +
	"Just use https://www.wkstats.com/ for now."

func oopsieMessage(prefix, attemptedCommand string) string {
	return fmt.Sprintf("Crabigator got too caught up studying and failed to handle `%s%s`. "+
		"Please try again.", prefix, attemptedCommand)
}

func unknownCommandMessage(prefix string) string {
	return fmt.Sprintf("Crabigator has yet to learn this ~~kanji~~ command. "+
		"Refer to `%shelp` to see what I can do!", prefix)
}

const helpStubMessage = "工事中: 鰐 and 蟹 are ignoring their reviews to make this command a reality."
