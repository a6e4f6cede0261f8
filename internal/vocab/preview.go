package vocab

import "time"

// PreviewEntry returns the illustrative entry used to preview card
// templates while they are edited.
func PreviewEntry() WordEntry {
	return WordEntry{
		ID:                          "preview-mock",
		Text:                        "serendipity",
		PhoneticUS:                  "/ˌsɛrənˈdɪpɪti/",
		PhoneticUK:                  "/ˌsɛrənˈdɪpɪti/",
		Translation:                 "意外发现珍奇事物的本领；机缘凑巧",
		PartOfSpeech:                "n.",
		ContextSentence:             "The discovery of penicillin was a happy serendipity.",
		ContextSentenceTranslation:  "青霉素的发现是一个令人高兴的意外机缘。",
		MixedSentence:               "The discovery of penicillin was a happy serendipity (意外机缘).",
		ContextParagraph:            "Many scientific discoveries are a result of serendipity. The discovery of penicillin was a happy serendipity that changed the course of medicine.",
		ContextParagraphTranslation: "许多科学发现都是机缘巧合的结果。青霉素的发现是一个改变医学进程的令人高兴的意外机缘。",
		SourceURL:                   "https://en.wikipedia.org/wiki/Serendipity",
		Category:                    WantToLearnWord,
		AddedAt:                     time.Now().UnixMilli(),
		Tags:                        []string{"Science", "Vocab"},
	}
}
