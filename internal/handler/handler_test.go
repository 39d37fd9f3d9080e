package handler

import (
	"context"
	"errors"
	"testing"

	"crabigator/internal/chat"
	"crabigator/internal/domain"
	"crabigator/internal/service"
	"crabigator/internal/session"
	"crabigator/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fixture struct {
	handler  *Handler
	gateway  *testutil.MockGateway
	creds    *testutil.MockCredentialRepository
	prefixes *testutil.MockPrefixRepository
	stats    *testutil.MockStatsProvider
	cache    *session.Cache
}

func newFixture() *fixture {
	gateway := new(testutil.MockGateway)
	creds := new(testutil.MockCredentialRepository)
	prefixes := new(testutil.MockPrefixRepository)
	stats := new(testutil.MockStatsProvider)
	cache := session.NewCache()

	accounts := service.NewAccountService(creds, prefixes, cache, "wk!", testutil.NewTestLogger())
	h := NewHandler(gateway, accounts, stats, "img", testutil.NewTestLogger())

	return &fixture{
		handler:  h,
		gateway:  gateway,
		creds:    creds,
		prefixes: prefixes,
		stats:    stats,
		cache:    cache,
	}
}

func privateMessage(userID int64, text string) chat.Message {
	return chat.Message{
		ID:      "42",
		ChatID:  userID,
		UserID:  userID,
		Text:    text,
		Private: true,
	}
}

func withUsername(msg chat.Message, username string) chat.Message {
	msg.Username = username
	return msg
}

func guildMessage(chatID, userID int64, text string) chat.Message {
	return chat.Message{
		ID:     "42",
		ChatID: chatID,
		UserID: userID,
		Text:   text,
	}
}

func TestHandleMessage_IgnoresUnprefixedText(t *testing.T) {
	f := newFixture()

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "hello there"))

	assert.NoError(t, err)
	f.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHandleMessage_IgnoresBarePrefix(t *testing.T) {
	f := newFixture()

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!"))

	assert.NoError(t, err)
	f.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHandleMessage_UnknownCommand(t *testing.T) {
	f := newFixture()

	f.gateway.On("Send", int64(1), unknownCommandMessage("wk!")).Return(nil)

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!burneverything"))

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleMessage_GuildPrefixOverride(t *testing.T) {
	f := newFixture()

	f.prefixes.On("Get", int64(500)).Return("crab!", nil)
	f.gateway.On("Send", int64(500), unknownCommandMessage("crab!")).Return(nil)

	// The default prefix no longer triggers in this guild.
	msg := guildMessage(500, 1, "crab!nonsense")
	assert.NoError(t, f.handler.HandleMessage(context.Background(), msg))

	f.prefixes.On("Get", int64(500)).Return("crab!", nil)
	ignored := guildMessage(500, 1, "wk!help")
	assert.NoError(t, f.handler.HandleMessage(context.Background(), ignored))

	f.gateway.AssertNumberOfCalls(t, "Send", 1)
}

func TestHandleMessage_CommandsAreCaseInsensitive(t *testing.T) {
	f := newFixture()

	f.creds.On("Remove", int64(1)).Return(false, nil)
	f.gateway.On("Send", int64(1), unknownPersonMessage).Return(nil)

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!RemoveUser"))

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleMessage_HandlerFailureBecomesOopsie(t *testing.T) {
	f := newFixture()

	f.creds.On("Remove", int64(1)).Return(false, errors.New("db down"))
	f.gateway.On("Send", int64(1), oopsieMessage("wk!", "removeuser")).Return(nil)

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!removeuser"))

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleMessage_HandlerPanicBecomesOopsie(t *testing.T) {
	f := newFixture()

	// A nil stats provider makes the user handler panic once registration
	// passes; the dispatcher must survive it.
	f.handler.stats = nil
	f.creds.On("Find", int64(1)).Return(testutil.NewTestCredential(1), nil)
	f.gateway.On("Send", int64(1), oopsieMessage("wk!", "user")).Return(nil)

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!user"))

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleAddUser(t *testing.T) {
	validToken := testutil.NewTestToken()

	tests := []struct {
		name          string
		msg           chat.Message
		existing      *domain.Credential
		expectedReply string
		expectStore   bool
		expectDelete  bool
	}{
		{
			name:          "rejected in shared channel",
			msg:           guildMessage(500, 1, "wk!adduser "+validToken),
			expectedReply: addUserNotPrivateMessage,
		},
		{
			name:          "missing token",
			msg:           privateMessage(1, "wk!adduser"),
			expectedReply: addUserUsageMessage("wk!"),
		},
		{
			name:          "too many arguments",
			msg:           privateMessage(1, "wk!adduser "+validToken+" extra"),
			expectedReply: addUserUsageMessage("wk!"),
		},
		{
			name:          "invalid token shape",
			msg:           privateMessage(1, "wk!adduser not-a-token"),
			expectedReply: tokenInvalidMessage,
		},
		{
			name:          "double registration rejected",
			msg:           privateMessage(1, "wk!adduser "+validToken),
			existing:      &domain.Credential{UserID: 1, APIToken: validToken},
			expectedReply: alreadyRegisteredMessage("wk!"),
		},
		{
			name:          "successful registration",
			msg:           privateMessage(1, "wk!adduser "+validToken),
			expectedReply: watchingMessage("<@1>"),
			expectStore:   true,
			expectDelete:  true,
		},
		{
			name:          "confirmation addresses the username when known",
			msg:           withUsername(privateMessage(1, "wk!adduser "+validToken), "koichi"),
			expectedReply: watchingMessage("@koichi"),
			expectStore:   true,
			expectDelete:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			f.prefixes.On("Get", mock.Anything).Return("", nil).Maybe()
			f.creds.On("Find", int64(1)).Return(tt.existing, nil).Maybe()
			if tt.expectStore {
				f.creds.On("Register", int64(1), validToken).Return(nil)
			}
			if tt.expectDelete {
				f.gateway.On("Delete", tt.msg.ChatID, "42").Return(nil)
			}
			f.gateway.On("Send", tt.msg.ChatID, tt.expectedReply).Return(nil)

			err := f.handler.HandleMessage(context.Background(), tt.msg)

			assert.NoError(t, err)
			f.gateway.AssertExpectations(t)
			if !tt.expectStore {
				f.creds.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandleAddUser_DeleteFailureStillConfirms(t *testing.T) {
	f := newFixture()
	token := testutil.NewTestToken()

	f.creds.On("Find", int64(1)).Return(nil, nil)
	f.creds.On("Register", int64(1), token).Return(nil)
	f.gateway.On("Delete", int64(1), "42").Return(errors.New("too old"))
	f.gateway.On("Send", int64(1), watchingMessage("<@1>")).Return(nil)

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!adduser "+token))

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleRemoveUser(t *testing.T) {
	t.Run("existing user gets farewell with custom emoji", func(t *testing.T) {
		f := newFixture()

		f.creds.On("Remove", int64(1)).Return(true, nil)
		f.gateway.On("CustomEmoji", int64(1), farewellEmojiHints).Return("😭", true)
		f.gateway.On("Send", int64(1), farewellMessage("😭")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!removeuser"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("fallback emoji when none found", func(t *testing.T) {
		f := newFixture()

		f.creds.On("Remove", int64(1)).Return(true, nil)
		f.gateway.On("CustomEmoji", int64(1), farewellEmojiHints).Return("", false)
		f.gateway.On("Send", int64(1), farewellMessage(":sob:")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!removeme"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()

		f.creds.On("Remove", int64(1)).Return(false, nil)
		f.gateway.On("Send", int64(1), unknownPersonMessage).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!removeuser"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})
}

func TestHandlePrefix(t *testing.T) {
	t.Run("denied in private channel", func(t *testing.T) {
		f := newFixture()

		f.gateway.On("Send", int64(1), prefixPrivateMessage).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!prefix crab!"))

		assert.NoError(t, err)
		f.prefixes.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("denied for non-administrator", func(t *testing.T) {
		f := newFixture()

		f.prefixes.On("Get", int64(500)).Return("", nil)
		f.gateway.On("IsAdmin", int64(500), int64(1)).Return(false, nil)
		f.gateway.On("Send", int64(500), prefixDeniedMessage).Return(nil)

		err := f.handler.HandleMessage(context.Background(), guildMessage(500, 1, "wk!prefix crab!"))

		assert.NoError(t, err)
		f.prefixes.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("usage hint without argument", func(t *testing.T) {
		f := newFixture()

		f.prefixes.On("Get", int64(500)).Return("", nil)
		f.gateway.On("IsAdmin", int64(500), int64(1)).Return(true, nil)
		f.gateway.On("Send", int64(500), prefixUsageMessage("wk!")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), guildMessage(500, 1, "wk!prefix"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("multi-word prefix rejected", func(t *testing.T) {
		f := newFixture()

		f.prefixes.On("Get", int64(500)).Return("", nil)
		f.gateway.On("IsAdmin", int64(500), int64(1)).Return(true, nil)
		f.gateway.On("Send", int64(500), prefixNoSpacesMessage).Return(nil)

		err := f.handler.HandleMessage(context.Background(), guildMessage(500, 1, "wk!prefix two words"))

		assert.NoError(t, err)
		f.prefixes.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("administrator changes prefix", func(t *testing.T) {
		f := newFixture()

		f.prefixes.On("Get", int64(500)).Return("", nil)
		f.gateway.On("IsAdmin", int64(500), int64(1)).Return(true, nil)
		f.prefixes.On("Set", int64(500), "crab!").Return(nil)
		f.gateway.On("Send", int64(500), prefixChangedMessage("crab!")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), guildMessage(500, 1, "wk!prefix crab!"))

		assert.NoError(t, err)
		f.prefixes.AssertExpectations(t)
	})
}

func TestHandleUser(t *testing.T) {
	t.Run("unregistered target gets canned reply", func(t *testing.T) {
		f := newFixture()

		f.creds.On("Find", int64(1)).Return(nil, nil)
		f.gateway.On("Send", int64(1), unknownUserMessage("wk!")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!user"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
		f.stats.AssertNotCalled(t, "FetchUserProfile", mock.Anything, mock.Anything)
	})

	t.Run("profile embed for registered user", func(t *testing.T) {
		f := newFixture()

		f.creds.On("Find", int64(1)).Return(testutil.NewTestCredential(1), nil)
		f.stats.On("FetchUserProfile", mock.Anything, int64(1)).
			Return(testutil.NewTestProfile("koichi", 12), nil)
		f.stats.On("FetchSummary", mock.Anything, int64(1)).
			Return(testutil.NewTestSummary([]int64{1, 2, 3}, []int64{10}, nil), nil)

		f.gateway.On("BotName").Return("Crabigator")
		f.gateway.On("SendEmbed", int64(1), mock.MatchedBy(func(e chat.Embed) bool {
			return e.Title == "WaniKani Profile" &&
				e.Author == "koichi" &&
				len(e.Fields) == 3 &&
				e.Fields[0].Value == "12" &&
				e.Fields[1].Value == "3" &&
				e.Fields[2].Value == "1"
		})).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!user"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("numeric id argument targets another user", func(t *testing.T) {
		f := newFixture()

		f.creds.On("Find", int64(777)).Return(testutil.NewTestCredential(777), nil)
		f.stats.On("FetchUserProfile", mock.Anything, int64(777)).
			Return(testutil.NewTestProfile("other", 3), nil)
		f.stats.On("FetchSummary", mock.Anything, int64(777)).
			Return(testutil.NewTestSummary(nil, nil, nil), nil)
		f.gateway.On("BotName").Return("Crabigator")
		f.gateway.On("SendEmbed", int64(1), mock.AnythingOfType("chat.Embed")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!user 777"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("mention argument targets the mentioned user", func(t *testing.T) {
		f := newFixture()

		msg := guildMessage(500, 1, "wk!user @other")
		msg.Mentions = []int64{777}

		f.prefixes.On("Get", int64(500)).Return("", nil)
		f.creds.On("Find", int64(777)).Return(testutil.NewTestCredential(777), nil)
		f.stats.On("FetchUserProfile", mock.Anything, int64(777)).
			Return(testutil.NewTestProfile("other", 3), nil)
		f.stats.On("FetchSummary", mock.Anything, int64(777)).
			Return(testutil.NewTestSummary(nil, nil, nil), nil)
		f.gateway.On("BotName").Return("Crabigator")
		f.gateway.On("SendEmbed", int64(500), mock.AnythingOfType("chat.Embed")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), msg)

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("ambiguous target arguments rejected", func(t *testing.T) {
		tests := []string{
			"wk!user 777 888",
			"wk!user definitely-not-an-id",
			"wk!user -5",
		}

		for _, text := range tests {
			f := newFixture()
			f.gateway.On("Send", int64(1), ambiguousTargetMessage).Return(nil)

			err := f.handler.HandleMessage(context.Background(), privateMessage(1, text))

			assert.NoError(t, err)
			f.gateway.AssertExpectations(t)
		}
	})

	t.Run("upstream failure becomes generic oopsie", func(t *testing.T) {
		f := newFixture()

		f.creds.On("Find", int64(1)).Return(testutil.NewTestCredential(1), nil)
		f.stats.On("FetchUserProfile", mock.Anything, int64(1)).
			Return(nil, domain.ErrUnavailable)
		f.gateway.On("Send", int64(1), oopsieMessage("wk!", "user")).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!user"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})
}

func TestHandleDaily(t *testing.T) {
	f := newFixture()

	f.creds.On("Find", int64(1)).Return(testutil.NewTestCredential(1), nil)
	f.stats.On("FetchSummary", mock.Anything, int64(1)).
		Return(testutil.NewTestSummary([]int64{1}, []int64{10, 11}, []int64{20}), nil)
	f.stats.On("FetchItemCounts", mock.Anything, int64(1)).
		Return(domain.ItemCounts{Radicals: 5, Kanji: 17, Vocabulary: 42, Burned: 3}, nil)
	f.stats.On("FetchReviewCount", mock.Anything, int64(1), mock.AnythingOfType("string")).
		Return(118, nil)

	f.gateway.On("BotName").Return("Crabigator")
	f.gateway.On("SendEmbed", int64(1), mock.MatchedBy(func(e chat.Embed) bool {
		return e.Title == "Daily Overview" &&
			len(e.Fields) == 8 &&
			e.Fields[0].Value == "1" &&
			e.Fields[1].Value == "2" &&
			e.Fields[2].Value == "118" &&
			e.Fields[3].Value == "1" &&
			e.Fields[4].Value == "5" &&
			e.Fields[5].Value == "17" &&
			e.Fields[6].Value == "42"
	})).Return(nil)

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!dailyoverview"))

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleLevelStats(t *testing.T) {
	f := newFixture()

	f.creds.On("Find", int64(1)).Return(testutil.NewTestCredential(1), nil)
	f.stats.On("GetOrFetchProfile", mock.Anything, int64(1)).
		Return(testutil.NewTestProfile("koichi", 12), nil)
	f.stats.On("FetchLevelProgressions", mock.Anything, int64(1)).
		Return([]domain.LevelProgression{{ID: 1, Level: 1, Passed: true}}, nil)
	f.gateway.On("Send", int64(1), levelStatsStubMessage).Return(nil)

	err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!leveling"))

	assert.NoError(t, err)
	f.stats.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
}

func TestFunCommands(t *testing.T) {
	tests := []struct {
		text    string
		image   string
		caption string
	}{
		{text: "wk!congratulations", image: "img/concrabs.png"},
		{text: "wk!gratz <@777>", image: "img/concrabs.png", caption: "<@777>"},
		{text: "wk!boo", image: "img/crabrage.png"},
		{text: "wk!rage <@777>", image: "img/crabrage.png", caption: "<@777>"},
		{text: "wk!love", image: "img/crablove.png"},
		{text: "wk!<3", image: "img/crablove.png"},
		{text: "wk!eva", image: "img/eva.png"},
		{text: "wk!ballot_box_with_check", image: "img/superior_checkmark.png"},
		{text: "wk!☑", image: "img/superior_checkmark.png"},
		{text: "wk!draw", image: "img/certificate.png"},
		{text: "wk!certify", image: "img/certificate.png"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f := newFixture()
			f.gateway.On("SendFile", int64(1), tt.image, tt.caption).Return(nil)

			err := f.handler.HandleMessage(context.Background(), privateMessage(1, tt.text))

			assert.NoError(t, err)
			f.gateway.AssertExpectations(t)
		})
	}
}

func TestHandleHelp(t *testing.T) {
	t.Run("lists all commands", func(t *testing.T) {
		f := newFixture()

		f.gateway.On("BotName").Return("Crabigator")
		f.gateway.On("SendEmbed", int64(1), mock.MatchedBy(func(e chat.Embed) bool {
			if e.Title != "Crabigator Commands Help" {
				return false
			}
			// A saying fills the empty description.
			return e.Description != "" && len(e.Fields) >= 8
		})).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!help"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("command-specific help is stubbed", func(t *testing.T) {
		f := newFixture()

		f.gateway.On("BotName").Return("Crabigator")
		f.gateway.On("SendEmbed", int64(1), mock.MatchedBy(func(e chat.Embed) bool {
			return len(e.Fields) == 1 && e.Fields[0].Name == helpStubMessage
		})).Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!h user"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("help about help", func(t *testing.T) {
		f := newFixture()

		f.gateway.On("SendFile", int64(1), "img/yodawg.png", "").Return(nil)

		err := f.handler.HandleMessage(context.Background(), privateMessage(1, "wk!help help"))

		assert.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})
}
