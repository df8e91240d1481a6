package asr

// sampleWhisperJSON is a trimmed result of
// `whisper shoco.mp3 --model base --language ko --word_timestamps True --output_format json`.
const sampleWhisperJSON = `{
  "text": " 안녕하세요. 오늘은 날씨가 좋네요. 감사합니다.",
  "segments": [
    {"id": 0, "seek": 0, "start": 0.0, "end": 1.52, "text": " 안녕하세요.",
     "words": [{"word": " 안녕하세요.", "start": 0.0, "end": 1.52, "probability": 0.91}]},
    {"id": 1, "seek": 0, "start": 1.52, "end": 3.9, "text": " 오늘은 날씨가 좋네요.",
     "words": [{"word": " 오늘은", "start": 1.52, "end": 2.1, "probability": 0.88},
               {"word": " 날씨가", "start": 2.1, "end": 2.8, "probability": 0.93},
               {"word": " 좋네요.", "start": 2.8, "end": 3.9, "probability": 0.9}]},
    {"id": 2, "seek": 300, "start": 4.2, "end": 5.005, "text": " 감사합니다."}
  ],
  "language": "ko"
}`
